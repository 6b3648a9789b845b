package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, CanTransitionOrderStatus(OrderStatusDraft, OrderStatusSubmitted))
	assert.False(t, CanTransitionOrderStatus(OrderStatusSubmitted, OrderStatusDraft))
	assert.False(t, CanTransitionOrderStatus(OrderStatusSubmitted, OrderStatusSubmitted))
	assert.False(t, CanTransitionOrderStatus(OrderStatusDraft, OrderStatusDraft))
}

func TestValidateOrderStatusTransition(t *testing.T) {
	assert.NoError(t, ValidateOrderStatusTransition(OrderStatusDraft, OrderStatusSubmitted))

	err := ValidateOrderStatusTransition(OrderStatusSubmitted, OrderStatusDraft)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order status transition")

	assert.Error(t, ValidateOrderStatusTransition("UNKNOWN", OrderStatusSubmitted))
}
