package share

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSharer struct {
	supported bool

	textDelivered bool
	textErr       error
	textCalls     int

	fileDelivered bool
	fileErr       error
	fileCalls     int
	gotFilePath   string
}

func (f *fakeSharer) Supported() bool { return f.supported }

func (f *fakeSharer) ShareText(_ context.Context, _, _ string) (bool, error) {
	f.textCalls++
	return f.textDelivered, f.textErr
}

func (f *fakeSharer) ShareFile(_ context.Context, _, _, filePath string) (bool, error) {
	f.fileCalls++
	f.gotFilePath = filePath
	return f.fileDelivered, f.fileErr
}

func TestNative_Share(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported host is not delivered and not an error", func(t *testing.T) {
		sharer := &fakeSharer{supported: false}
		native := NewNative(sharer, nil)

		assert.False(t, native.Share(ctx, sampleContent()))
		assert.Zero(t, sharer.textCalls)
	})

	t.Run("text share delivers", func(t *testing.T) {
		sharer := &fakeSharer{supported: true, textDelivered: true}
		native := NewNative(sharer, nil)

		assert.True(t, native.Share(ctx, sampleContent()))
		assert.Equal(t, 1, sharer.textCalls)
	})

	t.Run("cancellation resolves to not delivered", func(t *testing.T) {
		sharer := &fakeSharer{supported: true, textDelivered: false}
		native := NewNative(sharer, nil)

		assert.False(t, native.Share(ctx, sampleContent()))
	})

	t.Run("image attaches when the fetch succeeds", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("png-bytes"))
		}))
		defer server.Close()

		sharer := &fakeSharer{supported: true, fileDelivered: true}
		native := NewNative(sharer, server.Client())

		content := sampleContent()
		content.Image = server.URL + "/poster.png"

		assert.True(t, native.Share(ctx, content))
		assert.Equal(t, 1, sharer.fileCalls)
		assert.Zero(t, sharer.textCalls)

		// Temp attachment is removed after the share
		_, err := os.Stat(sharer.gotFilePath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("attachment failure falls back to text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("png-bytes"))
		}))
		defer server.Close()

		sharer := &fakeSharer{supported: true, fileErr: errors.New("share sheet crashed"), textDelivered: true}
		native := NewNative(sharer, server.Client())

		content := sampleContent()
		content.Image = server.URL + "/poster.png"

		assert.True(t, native.Share(ctx, content))
		assert.Equal(t, 1, sharer.fileCalls)
		assert.Equal(t, 1, sharer.textCalls)
	})

	t.Run("image fetch failure falls back to text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		sharer := &fakeSharer{supported: true, textDelivered: true}
		native := NewNative(sharer, server.Client())

		content := sampleContent()
		content.Image = server.URL + "/poster.png"

		assert.True(t, native.Share(ctx, content))
		assert.Zero(t, sharer.fileCalls)
		assert.Equal(t, 1, sharer.textCalls)
	})

	t.Run("text failure swallows the error", func(t *testing.T) {
		sharer := &fakeSharer{supported: true, textErr: errors.New("no share targets")}
		native := NewNative(sharer, nil)

		assert.False(t, native.Share(ctx, sampleContent()))
	})
}

func TestCommandSharer(t *testing.T) {
	ctx := context.Background()

	t.Run("supported follows lookPath", func(t *testing.T) {
		sharer := NewCommandSharer("some-share-tool")
		sharer.lookPath = func(string) (string, error) { return "/usr/bin/some-share-tool", nil }
		assert.True(t, sharer.Supported())

		sharer.lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
		assert.False(t, sharer.Supported())
	})

	t.Run("success delivers", func(t *testing.T) {
		sharer := NewCommandSharer("some-share-tool")
		sharer.runner = func(context.Context, string, []string, string) error { return nil }

		delivered, err := sharer.ShareText(ctx, "title", "text")
		require.NoError(t, err)
		assert.True(t, delivered)
	})

	t.Run("exit status 1 is a cancellation", func(t *testing.T) {
		sharer := NewCommandSharer("some-share-tool")
		sharer.runner = func(ctx context.Context, _ string, _ []string, _ string) error {
			return exec.CommandContext(ctx, "sh", "-c", "exit 1").Run()
		}

		delivered, err := sharer.ShareText(ctx, "title", "text")
		require.NoError(t, err)
		assert.False(t, delivered)
	})

	t.Run("other failures surface", func(t *testing.T) {
		sharer := NewCommandSharer("some-share-tool")
		sharer.runner = func(context.Context, string, []string, string) error {
			return errors.New("command not found")
		}

		delivered, err := sharer.ShareFile(ctx, "title", "text", "/tmp/poster.png")
		require.Error(t, err)
		assert.False(t, delivered)
	})
}
