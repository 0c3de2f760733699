package api

import (
	"context"

	"github.com/Andebugulin/bloglist/internal/model"
)

// BlogClient performs bearer-token authenticated calls against the blog
// collection. It is immutable after construction; build a new one per
// session and drop it on logout.
type BlogClient struct {
	api   *Client
	token string
}

func (c *Client) WithToken(token string) *BlogClient {
	return &BlogClient{api: c, token: token}
}

func (b *BlogClient) List(ctx context.Context) ([]model.Blog, error) {
	var blogs []model.Blog
	if err := b.api.do(ctx, "GET", blogsPath, b.token, nil, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (b *BlogClient) Create(ctx context.Context, draft model.Draft) (*model.Blog, error) {
	var blog model.Blog
	if err := b.api.do(ctx, "POST", blogsPath, b.token, draft, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// UpdateLikes sends the caller-computed like count. The server echoes back
// the full resource.
func (b *BlogClient) UpdateLikes(ctx context.Context, id model.BlogID, likes int) (*model.Blog, error) {
	body := struct {
		Likes int `json:"likes"`
	}{Likes: likes}

	var blog model.Blog
	if err := b.api.do(ctx, "PUT", blogsPath+"/"+string(id), b.token, body, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

func (b *BlogClient) Delete(ctx context.Context, id model.BlogID) error {
	return b.api.do(ctx, "DELETE", blogsPath+"/"+string(id), b.token, nil, nil)
}
