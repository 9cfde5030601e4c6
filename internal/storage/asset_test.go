package storage

import (
	"fmt"
	"testing"

	"github.com/pixil98/go-testutil"
)

// testSpec is a simple ValidatingSpec for testing
type testSpec struct {
	Valid bool `json:"valid"`
}

func (s *testSpec) Validate() error {
	if !s.Valid {
		return fmt.Errorf("spec is invalid")
	}
	return nil
}

func TestAsset_Validate(t *testing.T) {
	tests := map[string]struct {
		asset  Asset[*testSpec]
		expErr string
	}{
		"valid asset": {
			asset: Asset[*testSpec]{Version: 1, Identifier: "living_room", Spec: &testSpec{Valid: true}},
		},
		"version not set": {
			asset:  Asset[*testSpec]{Identifier: "hall", Spec: &testSpec{Valid: true}},
			expErr: "version must be set",
		},
		"empty identifier": {
			asset:  Asset[*testSpec]{Version: 1, Spec: &testSpec{Valid: true}},
			expErr: "id must be set",
		},
		"identifier with spaces": {
			asset:  Asset[*testSpec]{Version: 1, Identifier: "living room", Spec: &testSpec{Valid: true}},
			expErr: "must contain only",
		},
		"identifier with slash": {
			asset:  Asset[*testSpec]{Version: 1, Identifier: "../etc", Spec: &testSpec{Valid: true}},
			expErr: "must contain only",
		},
		"missing spec": {
			asset:  Asset[*testSpec]{Version: 1, Identifier: "hall"},
			expErr: "spec must be set",
		},
		"invalid spec": {
			asset:  Asset[*testSpec]{Version: 1, Identifier: "hall", Spec: &testSpec{}},
			expErr: "spec is invalid",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.asset.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}
