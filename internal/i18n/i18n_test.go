package i18n_test

import (
	"github.com/OPSAF/Anime/internal/i18n"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveTag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		target      string
		cookie      string
		accept      string
		want        language.Tag
		wantPersist bool
	}{
		{name: "default", target: "/", want: language.English},
		{name: "query", target: "/?lang=zh-CN", want: language.SimplifiedChinese, wantPersist: true},
		{name: "query beats cookie", target: "/?lang=en", cookie: "zh-Hans", want: language.English, wantPersist: true},
		{name: "unsupported query falls through", target: "/?lang=xx-invalid-", cookie: "zh-Hans",
			want: language.SimplifiedChinese},
		{name: "cookie", target: "/", cookie: "zh-Hans", want: language.SimplifiedChinese},
		{name: "accept language", target: "/", accept: "zh-CN,zh;q=0.9,en;q=0.8", want: language.SimplifiedChinese},
		{name: "accept language english", target: "/", accept: "en-GB,en;q=0.9", want: language.English},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: i18n.LangCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				r.Header.Set("Accept-Language", tt.accept)
			}
			got, persist := i18n.ResolveTag(r)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.wantPersist, persist)
		})
	}
}

func TestSetLanguageCookie(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	i18n.SetLanguageCookie(rec, language.SimplifiedChinese)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, i18n.LangCookieName, cookies[0].Name)
	require.Equal(t, "zh-Hans", cookies[0].Value)
}

func TestPrinter(t *testing.T) {
	t.Parallel()
	require.Equal(t, "1 + 1", i18n.Printer(i18n.Default()).Sprintf("%d + %d", 1, 1))
	require.Equal(t, []language.Tag{language.English, language.SimplifiedChinese}, i18n.Supported())
}
