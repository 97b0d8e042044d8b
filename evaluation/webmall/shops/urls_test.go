package shops

import (
	"testing"

	"github.com/stretchr/testify/require"

	werrors "webmall/internal/errors"
)

func testValues() map[string]string {
	return map[string]string{
		KeyShop1:    "http://shop1.example.com/",
		KeyShop2:    "http://shop2.example.com",
		KeyShop3:    "http://shop3.example.com",
		KeyShop4:    "http://shop4.example.com",
		KeyFrontend: "http://frontend.example.com",
	}
}

func TestFromMapTrimsTrailingSlash(t *testing.T) {
	urls, err := FromMap(testValues())
	require.NoError(t, err)
	require.Equal(t, "http://shop1.example.com", urls.Get(KeyShop1))
	require.Equal(t, "http://frontend.example.com", urls.Frontend())

	shops := urls.Shops()
	require.Len(t, shops, 4)
	require.Equal(t, 3, shops[2].Index)
	require.Equal(t, KeyShop3, shops[2].Key)
}

func TestFromMapMissingKeyIsConfigError(t *testing.T) {
	values := testValues()
	delete(values, KeyShop3)

	_, err := FromMap(values)
	require.Error(t, err)
	require.True(t, werrors.IsConfigError(err))
	require.Contains(t, err.Error(), KeyShop3)
}

func TestSubstitute(t *testing.T) {
	urls, err := FromMap(testValues())
	require.NoError(t, err)

	got := urls.Substitute("Go to http://localhost:SHOP2_PORT/product/x and submit at {{FRONTEND_URL}}.")
	require.Equal(t, "Go to http://shop2.example.com/product/x and submit at http://frontend.example.com.", got)

	require.Equal(t, "unchanged", URLs{}.Substitute("unchanged"))
}
