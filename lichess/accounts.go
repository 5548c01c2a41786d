package lichess

type Account struct {
	ID       string
	Username string
	Title    string
	Profile  Profile

	Disabled bool

	CreatedAt int64
	SeenAt    int64
}

func (account *Account) IsBot() bool {
	return account.Title == "BOT"
}

type Profile struct {
	FirstName string
	LastName  string
	Country   string
}

func (c *Client) GetAccount() (*Account, error) {
	req, err := c.newRequest("GET", "/api/account", nil)
	if err != nil {
		return nil, err
	}

	res := Account{}
	err = c.doJSONRequest(req, &res)
	return &res, err
}

func (c *Client) GetUser(username string) (*Account, error) {
	req, err := c.newRequest("GET", "/api/user/"+username, nil)
	if err != nil {
		return nil, err
	}

	res := Account{}
	err = c.doJSONRequest(req, &res)
	return &res, err
}
