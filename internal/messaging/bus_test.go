package messaging

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

func TestLocalBus_Delivers(t *testing.T) {
	tests := map[string]struct {
		subscribe string
		publish   []string
		expCount  int
	}{
		"matching subject": {subscribe: "autosave", publish: []string{"autosave", "autosave"}, expCount: 2},
		"other subject":    {subscribe: "autosave", publish: []string{"chat"}, expCount: 0},
		"mixed subjects":   {subscribe: "autosave", publish: []string{"chat", "autosave"}, expCount: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			bus := NewLocalBus(8)

			var mu sync.Mutex
			count := 0
			_, err := bus.Subscribe(tt.subscribe, func([]byte) {
				mu.Lock()
				count++
				mu.Unlock()
			})
			if err != nil {
				t.Fatalf("subscribing: %v", err)
			}

			for _, subject := range tt.publish {
				_ = bus.Publish(subject, []byte("x"))
			}

			// A cancelled context makes Start drain the queue and return.
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_ = bus.Start(ctx)

			mu.Lock()
			defer mu.Unlock()
			testutil.AssertEqual(t, "delivered", count, tt.expCount)
		})
	}
}

func TestLocalBus_Unsubscribe(t *testing.T) {
	bus := NewLocalBus(4)

	count := 0
	unsubscribe, _ := bus.Subscribe("autosave", func([]byte) { count++ })
	unsubscribe()

	_ = bus.Publish("autosave", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = bus.Start(ctx)

	testutil.AssertEqual(t, "delivered", count, 0)
}

func TestLocalBus_DropsWhenFull(t *testing.T) {
	bus := NewLocalBus(1)

	count := 0
	_, _ = bus.Subscribe("autosave", func([]byte) { count++ })

	for i := 0; i < 3; i++ {
		if err := bus.Publish("autosave", nil); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = bus.Start(ctx)

	testutil.AssertEqual(t, "delivered", count, 1)
}

func TestLocalBus_ReadyImmediately(t *testing.T) {
	bus := NewLocalBus(1)
	select {
	case <-bus.Ready():
	case <-time.After(time.Second):
		t.Fatal("local bus was not ready")
	}
}
