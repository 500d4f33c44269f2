package campaigns

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
)

// NewFirestoreClient initializes a Firestore client through the Firebase
// app for the given project. The caller owns the client and must Close it.
func NewFirestoreClient(ctx context.Context, projectID string) (*firestore.Client, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firestore client: %w", err)
	}

	return client, nil
}

// NewFirestore creates a Firestore-backed campaign repository.
func NewFirestore(client *firestore.Client) Repository {
	return NewFirestoreRepository(&FirestoreRepoConfig{
		Client: client,
	})
}
