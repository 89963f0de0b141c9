package frame

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeightMessage(t *testing.T) {
	b, err := HeightMessage(640)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"height","height":640}`, string(b))

	_, err = HeightMessage(-1)
	assert.Error(t, err)

	b, err = ScrollToTopMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"scrollToTop"}`, string(b))
}

func TestParseInbound(t *testing.T) {
	cmd, err := ParseInbound([]byte(`{"type":"setWish","wish":3}`))
	require.NoError(t, err)
	assert.Equal(t, 3, cmd.Wish)
	assert.Nil(t, cmd.Img)

	cmd, err = ParseInbound([]byte(`{"type":"setWish","wish":3,"img":0}`))
	require.NoError(t, err)
	require.NotNil(t, cmd.Img)
	assert.Equal(t, 0, *cmd.Img)

	_, err = ParseInbound([]byte(`{"type":"resize"}`))
	assert.ErrorIs(t, err, ErrUnknownMessage)

	_, err = ParseInbound([]byte(`{"type":"setWish"}`))
	assert.Error(t, err)

	_, err = ParseInbound([]byte(`not json`))
	assert.Error(t, err)
}

func TestParseDeepLink(t *testing.T) {
	q, err := url.ParseQuery("wish=4&img=9&lang=en")
	require.NoError(t, err)

	cmd, ok := ParseDeepLink(q)
	require.True(t, ok)
	assert.Equal(t, 4, cmd.Wish)
	require.NotNil(t, cmd.Img)
	assert.Equal(t, 9, *cmd.Img)

	cmd, ok = ParseDeepLink(url.Values{"wish": {"2"}, "img": {"x"}})
	require.True(t, ok)
	assert.Nil(t, cmd.Img)

	_, ok = ParseDeepLink(url.Values{"wish": {"zero"}})
	assert.False(t, ok)
	_, ok = ParseDeepLink(url.Values{})
	assert.False(t, ok)

	cleared := ClearDeepLink(q)
	assert.Equal(t, url.Values{"lang": {"en"}}, cleared)
	assert.Equal(t, "4", q.Get("wish"))
}
