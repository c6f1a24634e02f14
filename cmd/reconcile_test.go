package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"returns-bridge/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBatch_Array(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(` [{"itemId": 7, "status": 1}] `), 0o644))

	reqs, err := readBatch(path, nil)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].HasItemID())
}

func TestReadBatch_Envelope(t *testing.T) {
	reqs, err := readBatch("-", strings.NewReader(`{"items":[{"itemId":"3","status":"2"},{"outOfOrderFlag":true,"status":9}]}`))
	require.NoError(t, err)
	assert.Len(t, reqs, 2)
}

func TestReadBatch_Errors(t *testing.T) {
	_, err := readBatch(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.ErrorContains(t, err, "failed to read batch")

	_, err = readBatch("-", strings.NewReader(`{"items":`))
	assert.ErrorContains(t, err, "failed to parse batch")
}

func TestConfirmAction(t *testing.T) {
	yesConfirm = false
	var out bytes.Buffer

	assert.True(t, confirmAction(strings.NewReader("yes\n"), &out))
	assert.False(t, confirmAction(strings.NewReader("no\n"), &out))
	assert.False(t, confirmAction(strings.NewReader(""), &out))

	yesConfirm = true
	t.Cleanup(func() { yesConfirm = false })
	assert.True(t, confirmAction(strings.NewReader(""), &out))
}

func TestReadyToApply(t *testing.T) {
	allInvalid, err := reconcile.BuildPlan([]reconcile.ChangeRequest{{Status: reconcile.NewValue(2)}})
	require.NoError(t, err)
	require.Empty(t, allInvalid.Actions)

	apply, err := readyToApply(allInvalid, reconcile.PolicyAtomic)
	assert.ErrorIs(t, err, reconcile.ErrInvalidBatch)
	assert.False(t, apply)

	apply, err = readyToApply(allInvalid, reconcile.PolicyTolerant)
	assert.NoError(t, err)
	assert.False(t, apply)

	valid, err := reconcile.BuildPlan([]reconcile.ChangeRequest{{ItemID: reconcile.NewValue(10), Status: reconcile.NewValue(2)}})
	require.NoError(t, err)

	apply, err = readyToApply(valid, reconcile.PolicyAtomic)
	assert.NoError(t, err)
	assert.True(t, apply)
}

func TestRunReconcile_StdinRequiresYes(t *testing.T) {
	batchFile, dryRunBatch, yesConfirm = "-", false, false
	t.Cleanup(func() { batchFile = "" })

	cmd := reconcileCmd
	cmd.SetIn(strings.NewReader(`[{"itemId":10,"status":2}]`))
	err := runReconcile(cmd, nil)
	assert.ErrorContains(t, err, "--yes is required")
}
