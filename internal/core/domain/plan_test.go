package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupPlan_Empty(t *testing.T) {
	plan := NewCleanupPlan("p1", nil)

	assert.True(t, plan.IsEmpty())
	assert.Nil(t, plan.ObjectRemoval())
	assert.Empty(t, plan.CountByReason())
}

func TestCleanupPlan_ObjectRemoval(t *testing.T) {
	plan := NewCleanupPlan("b1", []CleanupAction{
		NewPurgeSubcollectionAction(CommentsPath("b1"), ReasonComment),
		NewRemoveObjectAction("https://store/o/a.png"),
	})

	obj := plan.ObjectRemoval()
	require.NotNil(t, obj)
	assert.Equal(t, "a.png", obj.Object.Path)
	assert.False(t, plan.IsEmpty())
}

func TestCleanupPlan_RecordsAndCounts(t *testing.T) {
	plan := NewCleanupPlan("b1", nil)
	plan.AddRecords(
		DependentRecordRef{Path: "publicContent/b1/comments/c1", Reason: ReasonComment},
		DependentRecordRef{Path: "publicContent/b1/comments/c2", Reason: ReasonComment},
		DependentRecordRef{Path: "users/u2/savedBooks/s1", Reason: ReasonSavedReference},
	)

	assert.False(t, plan.IsEmpty())
	assert.Equal(t, map[RefReason]int{
		ReasonComment:        2,
		ReasonSavedReference: 1,
	}, plan.CountByReason())
}

func TestCleanupPlan_AddFailure(t *testing.T) {
	plan := NewCleanupPlan("b1", nil)
	plan.AddFailure(ActionResult{
		Action: "purge-references:trackedBooks",
		Lane:   LaneDiscovery,
		Status: StatusFailed,
		Err:    errors.New("boom"),
	})

	require.Len(t, plan.Failures, 1)
	assert.True(t, plan.Failures[0].Failed())
}
