package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplayCache(t *testing.T) {
	c := NewReplayCache()

	_, ok := c.Get("pay_1")
	assert.False(t, ok)

	c.Set("pay_1", "http://host/invoices/invoice-a.pdf")
	url, ok := c.Get("pay_1")
	assert.True(t, ok)
	assert.Equal(t, "http://host/invoices/invoice-a.pdf", url)

	_, ok = c.Get("pay_2")
	assert.False(t, ok)
}
