package slowlog

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSlowLog(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	t.Run("should time breakpoints", func(t *testing.T) {
		tests := []struct {
			name          string
			logic         func(slowLog Logger) []time.Duration
			expectedTimes []time.Duration
		}{
			{
				name: "single breakpoint",
				logic: func(slowLog Logger) []time.Duration {
					slowLog.Start("checkout:create-session")
					time.Sleep(1 * time.Millisecond)
					rounded := slowLog.Stop("checkout:create-session").Round(time.Millisecond)
					return []time.Duration{rounded}
				},
				expectedTimes: []time.Duration{time.Millisecond},
			},
			{
				name: "nested breakpoints",
				logic: func(slowLog Logger) []time.Duration {
					slowLog.Start("checkout:submit")
					time.Sleep(1 * time.Millisecond)

					slowLog.Start("checkout:create-order")
					time.Sleep(1 * time.Millisecond)
					inner := slowLog.Stop("checkout:create-order")

					time.Sleep(1 * time.Millisecond)
					outer := slowLog.Stop("checkout:submit")

					return []time.Duration{
						inner.Round(time.Millisecond),
						outer.Round(time.Millisecond),
					}
				},
				expectedTimes: []time.Duration{time.Millisecond, 3 * time.Millisecond},
			},
			{
				name: "restarting a breakpoint resets the timer",
				logic: func(slowLog Logger) []time.Duration {
					slowLog.Start("checkout:approve-order")
					time.Sleep(3 * time.Millisecond)
					slowLog.Start("checkout:approve-order")
					time.Sleep(1 * time.Millisecond)

					duration := slowLog.Stop("checkout:approve-order")

					return []time.Duration{duration.Round(time.Millisecond)}
				},
				expectedTimes: []time.Duration{1 * time.Millisecond},
			},
		}

		slowLog := CreateLogger(&log)

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				times := test.logic(slowLog)
				assert.Equal(t, 0, len(slowLog.ongoingTimers))
				for i, expectedTime := range test.expectedTimes {
					assert.True(t, times[i] >= expectedTime)
				}
			})
		}
	})
}
