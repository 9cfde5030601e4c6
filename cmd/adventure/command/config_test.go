package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-peril/internal/game"
	"github.com/pixil98/go-peril/internal/listener"
	"github.com/pixil98/go-peril/internal/messaging"
	"github.com/pixil98/go-testutil"
)

const contentDir = "../../../content"

func floatPtr(f float64) *float64 { return &f }

func TestConfig_ExampleValidates(t *testing.T) {
	data := []byte(`{
		"content": {
			"rooms": {"path": "` + contentDir + `/rooms"},
			"items": {"path": "` + contentDir + `/items"},
			"start_room": "apartment_living_room"
		},
		"saves": {"backend": "file", "path": "` + filepath.ToSlash(t.TempDir()) + `"},
		"nats": {"port": -1},
		"listeners": [{"protocol": "telnet", "port": 4000}, {"protocol": "ssh", "port": 4022}]
	}`)

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("unmarshalling config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "second listener", cfg.Listeners[1].Protocol.String(), "ssh")
}

func TestConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		cfg    Config
		expErr string
	}{
		"missing everything": {
			cfg:    Config{},
			expErr: "start_room is required",
		},
		"no listeners": {
			cfg:    Config{},
			expErr: "at least one listener is required",
		},
		"unknown backend": {
			cfg:    Config{Saves: SavesConfig{Backend: "tape"}},
			expErr: `unknown backend "tape"`,
		},
		"reserved slot": {
			cfg:    Config{Saves: SavesConfig{Backend: SaveBackendFile, Path: "x", Slots: []string{"autosave"}}},
			expErr: `slot "autosave" is reserved`,
		},
		"bad slot name": {
			cfg:    Config{Saves: SavesConfig{Backend: SaveBackendFile, Path: "x", Slots: []string{"../up"}}},
			expErr: "must contain only letters",
		},
		"redis without addr": {
			cfg:    Config{Saves: SavesConfig{Backend: SaveBackendRedis}},
			expErr: "redis_addr is required",
		},
		"threshold out of range": {
			cfg:    Config{Engine: EngineConfig{FuzzyThreshold: floatPtr(1.5)}},
			expErr: "fuzzy_threshold must be between 0 and 1",
		},
		"bad nats timeout": {
			cfg:    Config{Nats: NatsConfig{StartTimeout: "soon"}},
			expErr: "parsing start_timeout",
		},
		"listener without port": {
			cfg:    Config{Listeners: []ListenerConfig{{Protocol: ListenerTypeTelnet}}},
			expErr: "listener 0: port must be set",
		},
		"host key on telnet": {
			cfg:    Config{Listeners: []ListenerConfig{{Protocol: ListenerTypeTelnet, Port: 1, HostKeyPath: "k"}}},
			expErr: "host_key_path only applies to ssh listeners",
		},
		"login profiles on telnet": {
			cfg:    Config{Listeners: []ListenerConfig{{Protocol: ListenerTypeTelnet, Port: 1, LoginProfiles: true}}},
			expErr: "login_profiles only applies to ssh listeners",
		},
		"missing content path": {
			cfg:    Config{Content: ContentConfig{Rooms: AssetConfig[*game.Room]{Path: "/does/not/exist"}}},
			expErr: "rooms: invalid path",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertErrorContains(t, tt.cfg.Validate(), tt.expErr)
		})
	}
}

func TestListenerType_UnmarshalText(t *testing.T) {
	tests := map[string]struct {
		text   string
		exp    ListenerType
		expErr string
	}{
		"telnet":  {text: "telnet", exp: ListenerTypeTelnet},
		"ssh":     {text: "ssh", exp: ListenerTypeSSH},
		"unknown": {text: "gopher", expErr: "unknown listener type"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var lt ListenerType
			err := lt.UnmarshalText([]byte(tt.text))
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "type", lt.String(), tt.exp.String())
		})
	}
}

func TestContentConfig_BuildWorld(t *testing.T) {
	c := ContentConfig{
		Rooms:     AssetConfig[*game.Room]{Path: contentDir + "/rooms"},
		Items:     AssetConfig[*game.Item]{Path: contentDir + "/items"},
		StartRoom: "apartment_living_room",
	}

	w, err := c.BuildWorld()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "start", w.Player.Location, "apartment_living_room")
	testutil.AssertEqual(t, "rooms", len(w.Rooms), 6)
	if err := w.CheckOwnership(); err != nil {
		t.Errorf("ownership: %v", err)
	}

	gate, ok := w.Rooms["lobby"].Gate("east")
	testutil.AssertEqual(t, "gate found", ok, true)
	testutil.AssertEqual(t, "gate locked", gate.Locked, true)
}

func TestContentConfig_BuildWorld_BadStart(t *testing.T) {
	c := ContentConfig{
		Rooms:     AssetConfig[*game.Room]{Path: contentDir + "/rooms"},
		Items:     AssetConfig[*game.Item]{Path: contentDir + "/items"},
		StartRoom: "attic",
	}

	_, err := c.BuildWorld()
	testutil.AssertErrorContains(t, err, "building world")
}

func TestSavesConfig_BuildSaveStore(t *testing.T) {
	tests := map[string]struct {
		cfg func(dir string) SavesConfig
	}{
		"file": {cfg: func(dir string) SavesConfig { return SavesConfig{Backend: SaveBackendFile, Path: dir} }},
		"bolt": {cfg: func(dir string) SavesConfig {
			return SavesConfig{Backend: SaveBackendBolt, Path: filepath.Join(dir, "saves.db")}
		}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := tt.cfg(t.TempDir())
			store, err := cfg.BuildSaveStore(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer store.Close()

			recs, err := store.List(context.Background(), "ada")
			if err != nil {
				t.Fatalf("listing: %v", err)
			}
			testutil.AssertEqual(t, "saves", len(recs), 0)
		})
	}
}

func TestNatsConfig_BuildBus(t *testing.T) {
	local, err := (&NatsConfig{Disabled: true}).BuildBus()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := local.(*messaging.LocalBus); !ok {
		t.Errorf("expected a local bus, got %T", local)
	}

	embedded, err := (&NatsConfig{Port: -1}).BuildBus()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := embedded.(*messaging.NatsServer); !ok {
		t.Errorf("expected a nats server, got %T", embedded)
	}
}

func TestEngineConfig_BuildHandler(t *testing.T) {
	h := (&EngineConfig{FuzzyThreshold: floatPtr(0.2)}).BuildHandler("Try {{ .Verbs | len }} verbs.")

	w, err := (&ContentConfig{
		Rooms:     AssetConfig[*game.Room]{Path: contentDir + "/rooms"},
		Items:     AssetConfig[*game.Item]{Path: contentDir + "/items"},
		StartRoom: "apartment_living_room",
	}).BuildWorld()
	if err != nil {
		t.Fatalf("building world: %v", err)
	}

	_, resp := h.Evaluate(context.Background(), w, "help")
	if resp == "" || resp == "Try {{ .Verbs | len }} verbs." {
		t.Errorf("help template was not rendered: %q", resp)
	}
}

func TestListenerConfig_HostKeyPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "host_key")
	cl := ListenerConfig{Protocol: ListenerTypeSSH, Port: 4022, HostKeyPath: path}

	first, err := cl.hostKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cl.hostKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "same key",
		string(second.PublicKey().Marshal()), string(first.PublicKey().Marshal()))

	if err := os.WriteFile(path, []byte("not a key"), 0600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = cl.hostKey()
	testutil.AssertErrorContains(t, err, "parsing host key")
}

func TestListenerConfig_BuildListener(t *testing.T) {
	tests := map[string]struct {
		cfg     ListenerConfig
		expType string
	}{
		"telnet": {cfg: ListenerConfig{Protocol: ListenerTypeTelnet, Port: 4000, Host: "127.0.0.1"}, expType: "*listener.TelnetListener"},
		"ssh":    {cfg: ListenerConfig{Protocol: ListenerTypeSSH, Port: 4022, LoginProfiles: true}, expType: "*listener.SSHListener"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w, err := tt.cfg.BuildListener(listener.NewConnectionManager(nil))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "type", fmt.Sprintf("%T", w), tt.expType)
		})
	}
}
