package service

import (
	"context"
	"errors"

	"github.com/festy23/contribution_points/internal/contribution/model"
	"github.com/festy23/contribution_points/internal/contribution/repository"
	userModel "github.com/festy23/contribution_points/internal/user/model"
)

// RecordReviews stores one review per comment, in order. Commenters that match
// no user are stored with a nil reviewer.
func RecordReviews(
	ctx context.Context,
	repo repository.Repository,
	contributionID string,
	comments []model.ReviewComment,
	lookup IdentityLookup,
) ([]model.Review, error) {
	reviews := make([]model.Review, 0, len(comments))

	for _, c := range comments {
		var reviewerID *string
		u, err := lookup.FindByHandle(ctx, c.Author)
		switch {
		case err == nil:
			id := u.UserID
			reviewerID = &id
		case !errors.Is(err, userModel.ErrUserNotFound):
			return nil, err
		}

		rv, err := repo.CreateReview(ctx, contributionID, reviewerID, c.Body)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *rv)
	}

	return reviews, nil
}
