package main

import (
	"testing"

	"payment-portal/config"
	"payment-portal/internal/core/domain"
	"payment-portal/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipientsFromConfig_Default(t *testing.T) {
	assert.Equal(t, workflow.DefaultRecipients(), recipientsFromConfig(nil))
}

func TestRecipientsFromConfig_Configured(t *testing.T) {
	got := recipientsFromConfig([]config.RecipientConfig{
		{ID: "07", Name: "Grace Hopper", AccountNumber: "****1906", Bank: "Navy Federal", Recent: true},
		{ID: "8", Name: "Alan Turing", AccountNumber: "****1912", Bank: "Barclays"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, domain.Recipient{ID: "07", Name: "Grace Hopper", AccountNumber: "****1906", Bank: "Navy Federal", IsRecent: true}, got[0])
	assert.False(t, got[1].IsRecent)

	dir, err := workflow.NewStaticDirectory(got)
	require.NoError(t, err)
	r, ok := dir.FindByID(domain.NormalizeRecipientID("7"))
	require.True(t, ok)
	assert.Equal(t, "Grace Hopper", r.Name)
}
