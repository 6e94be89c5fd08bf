package config

import (
	"os"
	"path/filepath"

	"github.com/indexmd/indexmd/internal/index"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	SeeLabel          string `mapstructure:"see_label"`
	SeeAlsoLabel      string `mapstructure:"see_also_label"`
	CategorySeparator string `mapstructure:"category_separator"`
	FieldSeparator    string `mapstructure:"field_separator"`
	ListSeparator     string `mapstructure:"list_separator"`
	PathSeparator     string `mapstructure:"path_separator"`
	RangeSeparator    string `mapstructure:"range_separator"`
	IDPrefix          string `mapstructure:"id_prefix"`
	RunInChildren     bool   `mapstructure:"run_in_children"`
	GroupHeadings     bool   `mapstructure:"group_headings"`
	SortEmphasisFirst bool   `mapstructure:"sort_emphasis_first"`
	CaseSensitiveSort bool   `mapstructure:"case_sensitive_sort"`
	AlwaysAnchor      bool   `mapstructure:"always_anchor"`
	SectionMode       bool   `mapstructure:"section_mode"`
	ShowWarnings      bool   `mapstructure:"show_warnings"`
	Verbose           bool   `mapstructure:"verbose"`
	IncludeHeader     bool   `mapstructure:"include_header"`
	HeaderText        string `mapstructure:"header_text"`
	IncludeFooter     bool   `mapstructure:"include_footer"`
	FooterText        string `mapstructure:"footer_text"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	defaults := index.DefaultOptions()

	viper.SetDefault("see_label", defaults.SeeLabel)
	viper.SetDefault("see_also_label", defaults.SeeAlsoLabel)
	viper.SetDefault("category_separator", defaults.CategorySeparator)
	viper.SetDefault("field_separator", defaults.FieldSeparator)
	viper.SetDefault("list_separator", defaults.ListSeparator)
	viper.SetDefault("path_separator", defaults.PathSeparator)
	viper.SetDefault("range_separator", defaults.RangeSeparator)
	viper.SetDefault("id_prefix", defaults.IDPrefix)
	viper.SetDefault("run_in_children", defaults.RunInChildren)
	viper.SetDefault("group_headings", defaults.GroupHeadings)
	viper.SetDefault("sort_emphasis_first", defaults.SortEmphasisFirst)
	viper.SetDefault("case_sensitive_sort", defaults.CaseSensitiveSort)
	viper.SetDefault("always_anchor", defaults.AlwaysAnchor)
	viper.SetDefault("section_mode", defaults.SectionMode)
	viper.SetDefault("show_warnings", defaults.ShowWarnings)
	viper.SetDefault("verbose", defaults.Verbose)
	viper.SetDefault("include_header", defaults.IncludeHeader)
	viper.SetDefault("header_text", defaults.HeaderText)
	viper.SetDefault("include_footer", defaults.IncludeFooter)
	viper.SetDefault("footer_text", defaults.FooterText)

	viper.SetConfigName("indexmd")
	viper.SetConfigType("toml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "indexmd"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("INDEXMD")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// Options assembles the engine options from the active configuration
func Options() index.Options {
	return index.Options{
		SeeLabel:          viper.GetString("see_label"),
		SeeAlsoLabel:      viper.GetString("see_also_label"),
		CategorySeparator: viper.GetString("category_separator"),
		FieldSeparator:    viper.GetString("field_separator"),
		ListSeparator:     viper.GetString("list_separator"),
		PathSeparator:     viper.GetString("path_separator"),
		RangeSeparator:    viper.GetString("range_separator"),
		IDPrefix:          viper.GetString("id_prefix"),
		RunInChildren:     viper.GetBool("run_in_children"),
		GroupHeadings:     viper.GetBool("group_headings"),
		SortEmphasisFirst: viper.GetBool("sort_emphasis_first"),
		CaseSensitiveSort: viper.GetBool("case_sensitive_sort"),
		AlwaysAnchor:      viper.GetBool("always_anchor"),
		SectionMode:       viper.GetBool("section_mode"),
		ShowWarnings:      viper.GetBool("show_warnings"),
		Verbose:           viper.GetBool("verbose"),
		IncludeHeader:     viper.GetBool("include_header"),
		HeaderText:        viper.GetString("header_text"),
		IncludeFooter:     viper.GetBool("include_footer"),
		FooterText:        viper.GetString("footer_text"),
	}
}

// GetVerbose returns whether verbose reporting is on
func GetVerbose() bool {
	return viper.GetBool("verbose")
}

// GetShowWarnings returns whether warnings are echoed
func GetShowWarnings() bool {
	return viper.GetBool("show_warnings")
}

// SetVerbose sets verbose reporting at runtime
func SetVerbose(v bool) {
	viper.Set("verbose", v)
	C.Verbose = v
}

// SetShowWarnings sets warning echo at runtime
func SetShowWarnings(v bool) {
	viper.Set("show_warnings", v)
	C.ShowWarnings = v
}

// SetSectionMode sets section mode at runtime
func SetSectionMode(v bool) {
	viper.Set("section_mode", v)
	C.SectionMode = v
}
