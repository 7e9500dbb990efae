package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 是引擎的业务参数。零值字段在 New 时回填默认值，
// 默认值即线上行为（超采样系数、版块大小、送礼禁选品类等）。
type Config struct {
	// 超采样系数：召回 k × factor 个候选，给过滤/多样性留余量
	CatalogOverfetch      int `yaml:"catalog_overfetch"`      // 个性化目录，默认 3
	AlternativesOverfetch int `yaml:"alternatives_overfetch"` // 找替代品，默认 2
	GiftOverfetch         int `yaml:"gift_overfetch"`         // 礼物推荐，默认 5

	// 默认返回条数（调用方传 k <= 0 时生效）
	DefaultCatalogK int `yaml:"default_catalog_k"` // 默认 20
	DefaultK        int `yaml:"default_k"`         // 其余操作，默认 10

	// 发现流
	FeedSectionSize int    `yaml:"feed_section_size"` // 每个版块条数，默认 5
	JustForTodayK   int    `yaml:"just_for_today_k"`  // 版块 1 的检索量，默认 10
	NewArrivalsK    int    `yaml:"new_arrivals_k"`    // 版块 2 的检索量，默认 20
	TrendingWindow  string `yaml:"trending_window"`   // 默认 "7d"
	NoiseScale      float64 `yaml:"noise_scale"`      // 口味扰动幅度（相对种子范数），默认 0.1

	// 礼物推荐
	TabooCategories        []string `yaml:"taboo_categories"`          // 不适合送礼的品类
	GiftCategories         []string `yaml:"gift_categories"`           // 空清单时的精选品类
	GiftSamplesPerCategory int      `yaml:"gift_samples_per_category"` // 每个精选品类抽样数，默认 3

	// 标定
	CalibrationTopCategories  int `yaml:"calibration_top_categories"`   // 默认 10
	CalibrationMinPerCategory int `yaml:"calibration_min_per_category"` // 默认 2
	CalibrationRecsK          int `yaml:"calibration_recs_k"`           // 标定后即时推荐条数，默认 10
	CalibrationRecsSearchK    int `yaml:"calibration_recs_search_k"`    // 对应检索量，默认 20
}

// DefaultConfig 返回线上默认参数。
func DefaultConfig() Config {
	return Config{
		CatalogOverfetch:      3,
		AlternativesOverfetch: 2,
		GiftOverfetch:         5,

		DefaultCatalogK: 20,
		DefaultK:        10,

		FeedSectionSize: 5,
		JustForTodayK:   10,
		NewArrivalsK:    20,
		TrendingWindow:  "7d",
		NoiseScale:      0.1,

		TabooCategories:        []string{"Underwear bottom", "Underwear Tights", "Socks"},
		GiftCategories:         []string{"Dress", "Sweater", "Bag"},
		GiftSamplesPerCategory: 3,

		CalibrationTopCategories:  10,
		CalibrationMinPerCategory: 2,
		CalibrationRecsK:          10,
		CalibrationRecsSearchK:    20,
	}
}

// LoadConfig 从 YAML 文件加载引擎参数，未出现的字段取默认值。
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read file: %w", err)
	}

	var wrapper struct {
		Engine Config `yaml:"engine"`
	}
	wrapper.Engine = cfg
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	return wrapper.Engine.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.CatalogOverfetch <= 0 {
		c.CatalogOverfetch = def.CatalogOverfetch
	}
	if c.AlternativesOverfetch <= 0 {
		c.AlternativesOverfetch = def.AlternativesOverfetch
	}
	if c.GiftOverfetch <= 0 {
		c.GiftOverfetch = def.GiftOverfetch
	}
	if c.DefaultCatalogK <= 0 {
		c.DefaultCatalogK = def.DefaultCatalogK
	}
	if c.DefaultK <= 0 {
		c.DefaultK = def.DefaultK
	}
	if c.FeedSectionSize <= 0 {
		c.FeedSectionSize = def.FeedSectionSize
	}
	if c.JustForTodayK <= 0 {
		c.JustForTodayK = def.JustForTodayK
	}
	if c.NewArrivalsK <= 0 {
		c.NewArrivalsK = def.NewArrivalsK
	}
	if c.TrendingWindow == "" {
		c.TrendingWindow = def.TrendingWindow
	}
	if c.NoiseScale <= 0 {
		c.NoiseScale = def.NoiseScale
	}
	if c.TabooCategories == nil {
		c.TabooCategories = def.TabooCategories
	}
	if c.GiftCategories == nil {
		c.GiftCategories = def.GiftCategories
	}
	if c.GiftSamplesPerCategory <= 0 {
		c.GiftSamplesPerCategory = def.GiftSamplesPerCategory
	}
	if c.CalibrationTopCategories <= 0 {
		c.CalibrationTopCategories = def.CalibrationTopCategories
	}
	if c.CalibrationMinPerCategory <= 0 {
		c.CalibrationMinPerCategory = def.CalibrationMinPerCategory
	}
	if c.CalibrationRecsK <= 0 {
		c.CalibrationRecsK = def.CalibrationRecsK
	}
	if c.CalibrationRecsSearchK <= 0 {
		c.CalibrationRecsSearchK = def.CalibrationRecsSearchK
	}
	return c
}
