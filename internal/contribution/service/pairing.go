package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	userModel "github.com/festy23/contribution_points/internal/user/model"
)

// IdentityLookup resolves a handle to a known user.
type IdentityLookup interface {
	FindByHandle(ctx context.Context, nickname string) (*userModel.User, error)
}

// pairedWith captures the run of handles after "paired with". The run ends at
// the first character that is not a word character, '@', '+' or whitespace.
var pairedWith = regexp.MustCompile(`(?i)paired\s*with\s*([@\w+\s]+)`)

// PairedHandles returns the handles named in the first "paired with" phrase of
// body, with '@' removed. Only tokens that contained '@' count.
func PairedHandles(body string) []string {
	m := pairedWith.FindStringSubmatch(body)
	if m == nil {
		return nil
	}

	var handles []string
	for _, token := range strings.Fields(m[1]) {
		if !strings.Contains(token, "@") {
			continue
		}
		if h := strings.ReplaceAll(token, "@", ""); h != "" {
			handles = append(handles, h)
		}
	}
	return handles
}

// ExtractCollaborators resolves the paired handles of body and appends author.
// Unknown handles are skipped. Duplicates are kept.
func ExtractCollaborators(
	ctx context.Context,
	body string,
	author userModel.User,
	lookup IdentityLookup,
) ([]userModel.User, error) {
	handles := PairedHandles(body)
	collaborators := make([]userModel.User, 0, len(handles)+1)

	for _, h := range handles {
		u, err := lookup.FindByHandle(ctx, h)
		if err != nil {
			if errors.Is(err, userModel.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		collaborators = append(collaborators, *u)
	}

	return append(collaborators, author), nil
}
