package provider

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/conductor/internal/domain"
	conductorerrors "github.com/mrz1836/conductor/internal/errors"
)

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("registered type", func(t *testing.T) {
		t.Parallel()
		r := NewDefaultRegistry()
		factory, err := r.Resolve(domain.ProviderOpenAI)
		require.NoError(t, err)
		assert.NotNil(t, factory)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		_, err := r.Resolve(domain.ProviderAnthropic)
		require.Error(t, err)
		assert.ErrorIs(t, err, conductorerrors.ErrProviderNotFound)
	})

	t.Run("registration replaces", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		r.Register(domain.ProviderOpenAI, NewOpenAI)
		r.Register(domain.ProviderOpenAI, NewAnthropic)

		factory, err := r.Resolve(domain.ProviderOpenAI)
		require.NoError(t, err)
		assert.Equal(t, domain.ProviderAnthropic, factory(Options{}).Type())
	})
}

func TestRegistry_Types(t *testing.T) {
	t.Parallel()

	r := NewDefaultRegistry()
	assert.Equal(t, []domain.ProviderType{
		domain.ProviderAnthropic,
		domain.ProviderOpenAI,
	}, r.Types())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := NewDefaultRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Register(domain.ProviderOpenAI, NewOpenAI)
		}()
		go func() {
			defer wg.Done()
			_, _ = r.Resolve(domain.ProviderOpenAI)
			_ = r.Has(domain.ProviderOpenAI)
			_ = r.Types()
		}()
	}
	wg.Wait()

	assert.True(t, r.Has(domain.ProviderOpenAI))
}
