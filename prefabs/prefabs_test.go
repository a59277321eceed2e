package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEntityBuildSpec(t *testing.T) {
	spec, err := LoadEntityBuildSpec("prefabs/tree.yaml")
	require.NoError(t, err)
	assert.Equal(t, "tree", spec.Name)
	require.Contains(t, spec.Components, "sprite")
	require.Len(t, spec.Children, 1)

	sprite, err := DecodeComponentSpec[SpriteComponentSpec](spec.Components["sprite"])
	require.NoError(t, err)
	assert.Equal(t, "tree.png", sprite.Image)
	assert.True(t, sprite.CenterOriginIfZero)

	anchor, err := DecodeComponentSpec[TransformComponentSpec](spec.Children[0].Components["transform"])
	require.NoError(t, err)
	assert.Equal(t, -1.4, anchor.Y)

	_, err = LoadEntityBuildSpec("missing.yaml")
	assert.Error(t, err)
}

func TestDecodeComponentSpecNil(t *testing.T) {
	got, err := DecodeComponentSpec[ChaserComponentSpec](nil)
	require.NoError(t, err)
	assert.Equal(t, ChaserComponentSpec{}, got)
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	prev := DiskDir
	DiskDir = dir
	t.Cleanup(func() { DiskDir = prev })

	override := []byte("name: custom_rock\ncomponents:\n  transform: {}\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rock.yaml"), override, 0o644))

	data, err := Load("prefabs/rock.yaml")
	require.NoError(t, err)
	assert.Equal(t, override, data)
	_, ok := ModTime("rock.yaml")
	assert.True(t, ok)

	spec, err := LoadEntityBuildSpec("tree.yaml")
	require.NoError(t, err)
	assert.Equal(t, "tree", spec.Name, "embedded copy is used when no disk file exists")
	_, ok = ModTime("tree.yaml")
	assert.False(t, ok)
}

func TestWatcherReportsSpecFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	target := filepath.Join(dir, "enemy.yaml")
	require.NoError(t, os.WriteFile(target, []byte("name: enemy\n"), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, target, got)
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no event for changed prefab")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "Close is idempotent")
}

func TestWatcherReportsAfterTruncateThenWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "demo.yaml")
	require.NoError(t, os.WriteFile(target, []byte("name: initial\n"), 0o644))

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(target, nil, 0o644))
	time.Sleep(20 * time.Millisecond)
	final := []byte("name: final\n")
	require.NoError(t, os.WriteFile(target, final, 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, target, got)
		data, err := os.ReadFile(got)
		require.NoError(t, err)
		assert.Equal(t, final, data, "event must not fire before the last write settles")
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no event after the final write")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
