//go:build e2e && unix

package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	tf := NewTUITest(t)
	out, err := tf.Run("http://127.0.0.1:1", "--help")
	require.NoError(t, err)

	for _, want := range []string{"Usage", "pat", "repos", "commit", "--base-url"} {
		assert.Contains(t, out, want)
	}
}

func TestHeadlessWorkflow(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	b := &fakeBackend{}
	url := newBackend(t, b)

	out, err := tf.Run(url, "pat", "set", "ghp_headless99")
	require.NoError(t, err, out)
	assert.Contains(t, out, "configured: ***ss99")

	out, err = tf.Run(url, "repos", "add", "https://dev.azure.com/org/proj/_git/tools", "-b", "release")
	require.NoError(t, err, out)
	assert.Contains(t, out, "已新增 proj/tools (release)。")

	out, err = tf.Run(url, "repos", "list")
	require.NoError(t, err, out)
	assert.Contains(t, out, "tools")
	assert.Contains(t, out, "release")

	out, err = tf.Run(url, "commit", "1", "-m", "ship it")
	require.NoError(t, err, out)
	assert.Contains(t, out, "已提交並推送至遠端分支 release。")
	assert.Equal(t, []string{"1:ship it"}, b.Commits())
}

func TestHeadlessFailureExitsNonZero(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	url := newBackend(t, &fakeBackend{})

	out, err := tf.Run(url, "repos", "add", "https://example.com/nothing")
	require.Error(t, err)
	assert.Contains(t, out, "無法解析 Repository URL")
}

func TestInteractiveModeNeedsTerminal(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)

	out, err := tf.Run("http://127.0.0.1:1")
	require.Error(t, err)
	assert.Contains(t, out, "needs a terminal")
}
