package api

import (
	"context"

	"github.com/Andebugulin/bloglist/internal/model"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session. Invalid credentials and
// transport errors are not distinguished beyond the returned error.
func (c *Client) Login(ctx context.Context, username, password string) (*model.Session, error) {
	var session model.Session
	err := c.do(ctx, "POST", loginPath, "", credentials{Username: username, Password: password}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
