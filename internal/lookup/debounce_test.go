package lookup

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer(t *testing.T) {
	t.Run("runs the function after the delay", func(t *testing.T) {
		d := NewDebouncer(10 * time.Millisecond)
		defer d.Stop()

		done := make(chan struct{})
		d.Schedule("cep", func() { close(done) })

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("scheduled function never ran")
		}
	})

	t.Run("rescheduling supersedes the pending call", func(t *testing.T) {
		d := NewDebouncer(20 * time.Millisecond)
		defer d.Stop()

		var first, second atomic.Bool
		done := make(chan struct{})

		d.Schedule("cep", func() { first.Store(true) })
		d.Schedule("cep", func() { second.Store(true); close(done) })

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("superseding function never ran")
		}

		assert.False(t, first.Load())
		assert.True(t, second.Load())
	})

	t.Run("keys are independent", func(t *testing.T) {
		d := NewDebouncer(10 * time.Millisecond)
		defer d.Stop()

		cep := make(chan struct{})
		cnpj := make(chan struct{})
		d.Schedule("cep", func() { close(cep) })
		d.Schedule("cnpj", func() { close(cnpj) })

		for _, ch := range []chan struct{}{cep, cnpj} {
			select {
			case <-ch:
			case <-time.After(time.Second):
				t.Fatal("scheduled function never ran")
			}
		}
	})

	t.Run("cancel drops the pending call", func(t *testing.T) {
		d := NewDebouncer(20 * time.Millisecond)
		defer d.Stop()

		var ran atomic.Bool
		d.Schedule("cep", func() { ran.Store(true) })
		d.Cancel("cep")

		time.Sleep(60 * time.Millisecond)
		assert.False(t, ran.Load())
	})

	t.Run("stop drops every pending call", func(t *testing.T) {
		d := NewDebouncer(20 * time.Millisecond)

		var ran atomic.Bool
		d.Schedule("cep", func() { ran.Store(true) })
		d.Schedule("cnpj", func() { ran.Store(true) })
		d.Stop()

		time.Sleep(60 * time.Millisecond)
		assert.False(t, ran.Load())
	})
}
