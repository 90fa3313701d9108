package auth

import (
	"context"
	"os"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Identity is what the external provider vouches for. The provider itself is a
// black box; we only ever see verified token claims.
type Identity struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

// TokenVerifier checks an identity-provider token and returns the caller's
// identity. Swapped for a stub in tests.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

type firebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier builds the production verifier from FIREBASE_PROJECT_ID
// and, when set, GOOGLE_APPLICATION_CREDENTIALS.
func NewFirebaseVerifier(ctx context.Context) (TokenVerifier, error) {
	var opts []option.ClientOption
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID: os.Getenv("FIREBASE_PROJECT_ID"),
	}, opts...)
	if err != nil {
		return nil, err
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, err
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)

	return &Identity{
		UID:     token.UID,
		Email:   email,
		Name:    name,
		Picture: picture,
	}, nil
}
