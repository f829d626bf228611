package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/weathervane/internal/auth/domain"
)

func intPtr(i int) *int {
	return &i
}

func TestIssueTokenRequest_Validate(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		req := IssueTokenRequest{
			Name:          "ci-deploy",
			ExpiresInDays: intPtr(30),
		}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Success_NoExpiry", func(t *testing.T) {
		req := IssueTokenRequest{
			Name: "laptop",
		}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Success_ExpiryBounds", func(t *testing.T) {
		testCases := []struct {
			name string
			days int
		}{
			{"minimum", authDomain.MinExpiresInDays},
			{"maximum", authDomain.MaxExpiresInDays},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				req := IssueTokenRequest{
					Name:          "ci-deploy",
					ExpiresInDays: intPtr(tc.days),
				}

				err := req.Validate()
				assert.NoError(t, err)
			})
		}
	})

	t.Run("Error_MissingName", func(t *testing.T) {
		req := IssueTokenRequest{
			Name: "",
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		req := IssueTokenRequest{
			Name: "   ",
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_NameTooLong", func(t *testing.T) {
		req := IssueTokenRequest{
			Name: strings.Repeat("a", authDomain.MaxNameLength+1),
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_ExpiryBelowMinimum", func(t *testing.T) {
		req := IssueTokenRequest{
			Name:          "ci-deploy",
			ExpiresInDays: intPtr(0),
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_ExpiryAboveMaximum", func(t *testing.T) {
		req := IssueTokenRequest{
			Name:          "ci-deploy",
			ExpiresInDays: intPtr(authDomain.MaxExpiresInDays + 1),
		}

		err := req.Validate()
		assert.Error(t, err)
	})
}

func TestIssueTokenRequest_ToInput(t *testing.T) {
	t.Run("Success_WithExpiry", func(t *testing.T) {
		req := IssueTokenRequest{
			Name:          "ci-deploy",
			ExpiresInDays: intPtr(30),
		}

		input := req.ToInput()

		assert.Equal(t, "ci-deploy", input.Name)
		require.NotNil(t, input.ExpiresInDays)
		assert.Equal(t, 30, *input.ExpiresInDays)
	})

	t.Run("Success_WithoutExpiry", func(t *testing.T) {
		req := IssueTokenRequest{
			Name: "laptop",
		}

		input := req.ToInput()

		assert.Equal(t, "laptop", input.Name)
		assert.Nil(t, input.ExpiresInDays)
	})
}
