// Package i18n holds the user-facing strings of sheetgrip in English and
// Chinese. The language is chosen once, when a Translator is created.
package i18n

import (
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys
const (
	Title            = "title"
	FolderPath       = "folder_path"
	SearchContent    = "search_content"
	Search           = "search"
	Stop             = "stop"
	OpenSelectedFile = "open_selected_file"
	ShowLog          = "show_log"
	InputError       = "input_error"
	InputWarning     = "input_warning"
	SearchStopped    = "search_stopped"
	NoResult         = "no_result"
	SearchedFiles    = "searched_files" // scanned, total
	MatchLine        = "match_line"     // file, sheet
	CannotRead       = "cannot_read"    // file, error
	Searching        = "searching"
	SearchFailed     = "search_failed"   // error
	SearchRejected   = "search_rejected" // reason
	Completed        = "completed"       // matches, errors
	ErrorCount       = "error_count"     // errors
	NoSelection      = "no_selection"
	OpenFailed       = "open_failed" // error
	Opening          = "opening"     // file
	NoErrors         = "no_errors"
	Results          = "results"
	Quit             = "quit"
	Help             = "help"
	Focus            = "focus"
	Navigate         = "navigate"
)

// Supported lists the languages with a catalog, English first as the fallback
var Supported = []language.Tag{language.English, language.Chinese}

var entries = map[string][2]string{
	Title:            {"Excel Content Search Tool", "Excel内容查询工具"},
	FolderPath:       {"Folder Path:", "文件夹路径:"},
	SearchContent:    {"Search Content:", "查询内容:"},
	Search:           {"Search", "查询"},
	Stop:             {"Stop", "停止"},
	OpenSelectedFile: {"Open Selected File", "打开选定文件"},
	ShowLog:          {"Show Log", "显示日志"},
	InputError:       {"Input Error", "输入错误"},
	InputWarning:     {"Please fill in the folder path and search content", "请填写文件夹路径和查询内容"},
	SearchStopped:    {"Search Stopped", "查询已停止"},
	NoResult:         {"No files containing the search content were found.", "未找到包含查询内容的文件。"},
	SearchedFiles:    {"Searched Files: %d/%d", "已查询文件数: %d/%d"},
	MatchLine:        {"File: %s, Sheet: %s", "文件: %s, 工作表: %s"},
	CannotRead:       {"Cannot read file %s: %s", "无法读取文件 %s：%s"},
	Searching:        {"Searching...", "正在查询..."},
	SearchFailed:     {"Search failed: %s", "查询失败: %s"},
	SearchRejected:   {"Search not started: %s", "查询未开始: %s"},
	Completed:        {"Search finished: %d matches, %d unreadable files", "查询完成: %d 个匹配, %d 个文件无法读取"},
	ErrorCount:       {"%d files could not be read (press l)", "%d 个文件无法读取 (按 l 查看)"},
	NoSelection:      {"Please select a file from the results first", "请先在结果中选择文件"},
	OpenFailed:       {"Could not open file: %s", "无法打开文件: %s"},
	Opening:          {"Opening %s", "正在打开 %s"},
	NoErrors:         {"No errors", "没有错误"},
	Results:          {"Results", "结果"},
	Quit:             {"quit", "退出"},
	Help:             {"help", "帮助"},
	Focus:            {"switch field", "切换输入框"},
	Navigate:         {"navigate", "移动"},
}

var cat = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, texts := range entries {
		for i, tag := range Supported {
			if err := b.SetString(tag, key, texts[i]); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Translator formats messages in one language
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New creates a translator for tag, falling back to English for unknown tags
func New(tag language.Tag) *Translator {
	tag = Match(tag)
	return &Translator{tag: tag, printer: message.NewPrinter(tag, message.Catalog(cat))}
}

// T returns the message for key formatted with args
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Language returns the language the translator prints in
func (t *Translator) Language() language.Tag {
	return t.tag
}

var matcher = language.NewMatcher(Supported)

// Match returns the supported language closest to tag
func Match(tag language.Tag) language.Tag {
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.English
	}
	return Supported[idx]
}

// Resolve picks the language from a configured name such as "zh", or, when
// that is empty, from a locale environment value such as "zh_CN.UTF-8".
func Resolve(lang, env string) language.Tag {
	if lang = strings.TrimSpace(lang); lang != "" {
		if tag, err := language.Parse(lang); err == nil {
			return Match(tag)
		}
		return language.English
	}
	return Match(localeTag(env))
}

// FromEnvironment resolves lang against LC_ALL, LC_MESSAGES and LANG, in that order
func FromEnvironment(lang string) language.Tag {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(name); v != "" {
			return Resolve(lang, v)
		}
	}
	return Resolve(lang, "")
}

// localeTag turns a POSIX locale like "zh_CN.UTF-8@euro" into a language tag
func localeTag(locale string) language.Tag {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return language.English
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.English
	}
	return tag
}
