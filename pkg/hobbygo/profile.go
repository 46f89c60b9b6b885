package hobbygo

import (
	"context"

	"github.com/hobbyhub/hobbies/pkg/hobbygo/routing"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/routing/payload"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/routing/response"
	"github.com/hobbyhub/hobbies/pkg/hobbygo/types"
)

func (c *Client) GetCurrentUser(ctx context.Context) (*types.User, error) {
	_, respData, err := c.MakeRoutingRequest(ctx, routing.HobbyCurrentUserURL, nil, nil)
	if err != nil {
		return nil, err
	}

	userResponse, ok := respData.(*response.CurrentUserResponse)
	if !ok || userResponse == nil {
		return nil, newErrorResponseTypeAssertFailed("*response.CurrentUserResponse")
	}

	return &userResponse.User, nil
}

func (c *Client) GetAllHobbies(ctx context.Context) ([]types.Hobby, error) {
	_, respData, err := c.MakeRoutingRequest(ctx, routing.HobbyAllHobbiesURL, nil, nil)
	if err != nil {
		return nil, err
	}

	hobbiesResponse, ok := respData.(*response.AllHobbiesResponse)
	if !ok || hobbiesResponse == nil {
		return nil, newErrorResponseTypeAssertFailed("*response.AllHobbiesResponse")
	}

	return []types.Hobby(*hobbiesResponse), nil
}

func (c *Client) AddHobby(ctx context.Context, hobbyID int) error {
	addHobbyPayload := payload.AddHobbyPayload{
		HobbyID: hobbyID,
	}

	_, _, err := c.MakeRoutingRequest(ctx, routing.HobbyAddSingleHobbyURL, addHobbyPayload, nil)
	if err != nil {
		return err
	}

	c.Logger.Debug().Int("hobby_id", hobbyID).Msg("Hobby added")
	return nil
}

func (c *Client) UpdateProfile(ctx context.Context, p payload.UpdateProfilePayload) error {
	_, _, err := c.MakeRoutingRequest(ctx, routing.HobbyUpdateProfileURL, p, nil)
	return err
}

func (c *Client) ChangePassword(ctx context.Context, p payload.ChangePasswordPayload) error {
	_, _, err := c.MakeRoutingRequest(ctx, routing.HobbyChangePasswordURL, p, nil)
	return err
}
