// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("ownerKey")
	if key.String() != "ownerKey" {
		t.Errorf("expected 'ownerKey', got '%s'", key.String())
	}
}

func TestUserIDCtxKey(t *testing.T) {
	if UserIDCtxKey.String() != "userID" {
		t.Errorf("expected 'userID', got '%s'", UserIDCtxKey.String())
	}
}

func TestGetUserIDFromContext_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		ctx        context.Context
		wantUserID int64
		wantOK     bool
	}{
		{
			name:       "value present",
			ctx:        context.WithValue(context.Background(), UserIDCtxKey, int64(7)),
			wantUserID: 7,
			wantOK:     true,
		},
		{
			name:   "value missing",
			ctx:    context.Background(),
			wantOK: false,
		},
		{
			name:   "wrong type",
			ctx:    context.WithValue(context.Background(), UserIDCtxKey, "7"),
			wantOK: false,
		},
		{
			name:       "zero id",
			ctx:        context.WithValue(context.Background(), UserIDCtxKey, int64(0)),
			wantUserID: 0,
			wantOK:     true,
		},
		{
			name:       "negative id",
			ctx:        context.WithValue(context.Background(), UserIDCtxKey, int64(-5)),
			wantUserID: -5,
			wantOK:     true,
		},
		{
			name:   "different key",
			ctx:    context.WithValue(context.Background(), contextKey("otherKey"), int64(99)),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, ok := GetUserIDFromContext(tt.ctx)

			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if userID != tt.wantUserID {
				t.Errorf("expected userID=%d, got %d", tt.wantUserID, userID)
			}
		})
	}
}
