package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		lang string
		env  string
		want language.Tag
	}{
		{"configured zh", "zh", "en_US.UTF-8", language.Chinese},
		{"configured en", "en", "zh_CN.UTF-8", language.English},
		{"configured region", "zh-CN", "", language.Chinese},
		{"configured unknown", "klingon-nonsense!", "zh_CN.UTF-8", language.English},
		{"env zh", "", "zh_CN.UTF-8", language.Chinese},
		{"env modifier", "", "zh_CN.GB18030@stroke", language.Chinese},
		{"env en", "", "en_GB.UTF-8", language.English},
		{"env posix", "", "C", language.English},
		{"env empty", "", "", language.English},
		{"env unsupported", "", "de_DE.UTF-8", language.English},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.lang, tt.env))
		})
	}
}

func TestFromEnvironmentPrefersLCAll(t *testing.T) {
	t.Setenv("LC_ALL", "zh_CN.UTF-8")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "en_US.UTF-8")
	assert.Equal(t, language.Chinese, FromEnvironment(""))
	assert.Equal(t, language.English, FromEnvironment("en"))
}

func TestTranslatorMessages(t *testing.T) {
	en := New(language.English)
	zh := New(language.Chinese)

	assert.Equal(t, "Searched Files: 3/7", en.T(SearchedFiles, 3, 7))
	assert.Equal(t, "已查询文件数: 3/7", zh.T(SearchedFiles, 3, 7))
	assert.Equal(t, "Search Stopped", en.T(SearchStopped))
	assert.Equal(t, "查询已停止", zh.T(SearchStopped))
	assert.Equal(t, "文件: a.xlsx, 工作表: Sheet1", zh.T(MatchLine, "a.xlsx", "Sheet1"))
}

func TestEveryKeyHasBothLanguages(t *testing.T) {
	en := New(language.English)
	zh := New(language.Chinese)
	for key, texts := range entries {
		assert.NotEmpty(t, texts[0], key)
		assert.NotEmpty(t, texts[1], key)
		assert.NotEqual(t, key, en.T(key), key)
		assert.NotEqual(t, key, zh.T(key), key)
	}
}

func TestNewFallsBackToEnglish(t *testing.T) {
	tr := New(language.French)
	assert.Equal(t, language.English, tr.Language())
	assert.Equal(t, "Excel Content Search Tool", tr.T(Title))
}
