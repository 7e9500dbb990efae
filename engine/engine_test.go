package engine

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/shopperos/tastekit/catalog"
	"github.com/shopperos/tastekit/core"
	"github.com/shopperos/tastekit/embedding"
	"github.com/shopperos/tastekit/recall"
	"github.com/shopperos/tastekit/taste"
)

// 固定测试目录：品类分布 Dress(3) > Sweater(2) > Bag/Socks/Underwear Tights(1)，
// Embedding 按品类聚簇。alice 的口味落在 Dress 簇，sockfan 落在 Socks 簇。
func testEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()

	products := []*core.Product{
		{ID: "d1", Name: "Floral Dress", Category: "Dress", Color: "Red", Price: 59},
		{ID: "d2", Name: "Maxi Dress", Category: "Dress", Color: "Blue", Price: 79},
		{ID: "d3", Name: "Slip Dress", Category: "Dress", Color: "Black", Price: 49},
		{ID: "s1", Name: "Wool Sweater", Category: "Sweater", Color: "Grey", Price: 89},
		{ID: "s2", Name: "Cardigan", Category: "Sweater", Color: "Beige", Price: 69},
		{ID: "b1", Name: "Tote Bag", Category: "Bag", Color: "Black", Price: 129},
		{ID: "k1", Name: "Ankle Socks", Category: "Socks", Color: "White", Price: 9},
		{ID: "t1", Name: "Sheer Tights", Category: "Underwear Tights", Color: "Black", Price: 19},
	}
	cat, err := catalog.New(products)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}

	idx, err := embedding.Build(
		[][]float64{
			{1, 0, 0, 0},
			{0.95, 0.05, 0, 0},
			{0.9, 0.1, 0, 0},
			{0, 1, 0, 0},
			{0.1, 0.9, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, 1},
			{0, 0, 0.1, 0.9},
		},
		[]string{"d1", "d2", "d3", "s1", "s2", "b1", "k1", "t1"},
	)
	if err != nil {
		t.Fatalf("embedding.Build() error = %v", err)
	}

	profiles := taste.NewProfileStore(idx, taste.WithDefaults(map[string][]float64{
		"alice":   {1, 0, 0, 0},
		"sockfan": {0, 0, 0, 1},
	}))

	base := []Option{
		WithPopular(&recall.Popular{IDs: []string{"d1", "s1", "b1"}}),
		WithTrending(&recall.Trending{Windows: map[string][]string{"7d": {"b1", "s1", "d2"}}}),
		WithRand(rand.New(rand.NewSource(1))),
	}
	return New(cat, idx, profiles, append(base, opts...)...)
}

func TestPersonalizedCatalog(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	got, err := e.PersonalizedCatalog(ctx, "alice", Filters{}, 3)
	if err != nil {
		t.Fatalf("PersonalizedCatalog() error = %v", err)
	}
	if got.ColdStart {
		t.Error("ColdStart = true for user with taste vector")
	}
	if len(got.Products) != 3 {
		t.Fatalf("returned %d products, want 3", len(got.Products))
	}
	// 分数降序
	for i := 1; i < len(got.Products); i++ {
		if got.Products[i].Score > got.Products[i-1].Score {
			t.Errorf("scores not descending at %d", i)
		}
	}
	// Dress 簇应该排在最前
	if got.Products[0].ID != "d1" {
		t.Errorf("top product = %s, want d1", got.Products[0].ID)
	}
}

func TestPersonalizedCatalog_Filters(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	got, err := e.PersonalizedCatalog(ctx, "alice", Filters{Category: "Sweater"}, 5)
	if err != nil {
		t.Fatalf("PersonalizedCatalog() error = %v", err)
	}
	for _, c := range got.Products {
		if c.Category() != "Sweater" {
			t.Errorf("product %s category = %s, want Sweater", c.ID, c.Category())
		}
	}

	got, err = e.PersonalizedCatalog(ctx, "alice", Filters{PriceMin: 50, PriceMax: 80}, 10)
	if err != nil {
		t.Fatalf("PersonalizedCatalog() error = %v", err)
	}
	for _, c := range got.Products {
		if c.Product.Price < 50 || c.Product.Price > 80 {
			t.Errorf("product %s price = %f, want in [50, 80]", c.ID, c.Product.Price)
		}
	}
}

func TestPersonalizedCatalog_ColdStart(t *testing.T) {
	e := testEngine(t)

	got, err := e.PersonalizedCatalog(context.Background(), "stranger", Filters{}, 2)
	if err != nil {
		t.Fatalf("PersonalizedCatalog() error = %v", err)
	}
	if !got.ColdStart {
		t.Error("ColdStart = false for unknown user")
	}
	// 热门榜前 2：d1, s1，固定中性亲和度
	if len(got.Products) != 2 || got.Products[0].ID != "d1" || got.Products[1].ID != "s1" {
		t.Fatalf("cold start products = %v, want [d1 s1]", got.Products)
	}
	for _, c := range got.Products {
		if c.Score != recall.NeutralScore {
			t.Errorf("cold start score = %f, want %f", c.Score, recall.NeutralScore)
		}
	}
}

func TestAlternatives(t *testing.T) {
	e := testEngine(t)

	got, err := e.Alternatives(context.Background(), "d1", 3)
	if err != nil {
		t.Fatalf("Alternatives() error = %v", err)
	}
	if got.Source == nil || got.Source.ID != "d1" {
		t.Fatalf("Source = %v, want d1", got.Source)
	}
	for _, c := range got.Alternatives {
		if c.ID == "d1" {
			t.Error("alternatives must never include the seed product")
		}
		if c.Reason == "" {
			t.Errorf("alternative %s has no reason", c.ID)
		}
	}
	// 最相似的替代品是同簇的 d2，理由为同品类
	if got.Alternatives[0].ID != "d2" {
		t.Errorf("top alternative = %s, want d2", got.Alternatives[0].ID)
	}
	if got.Alternatives[0].Reason != "Same style: Dress" {
		t.Errorf("top reason = %q, want Same style: Dress", got.Alternatives[0].Reason)
	}
}

func TestAlternatives_UnknownProduct(t *testing.T) {
	e := testEngine(t)

	_, err := e.Alternatives(context.Background(), "nope", 3)
	if err == nil {
		t.Fatal("Alternatives(unknown) expected error")
	}
	if !core.IsNotFound(err) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestDiscoveryFeed(t *testing.T) {
	e := testEngine(t)

	got, err := e.DiscoveryFeed(context.Background(), "alice")
	if err != nil {
		t.Fatalf("DiscoveryFeed() error = %v", err)
	}
	if len(got.Sections) != 3 {
		t.Fatalf("feed has %d sections, want 3", len(got.Sections))
	}

	wantTitles := []string{"Just For Today", "New Arrivals in Your Style", "Trending"}
	wantTypes := []string{"personalized", "new_arrivals", "trending"}
	for i := range wantTitles {
		if got.Sections[i].Title != wantTitles[i] {
			t.Errorf("section[%d].Title = %q, want %q", i, got.Sections[i].Title, wantTitles[i])
		}
		if got.Sections[i].Type != wantTypes[i] {
			t.Errorf("section[%d].Type = %q, want %q", i, got.Sections[i].Type, wantTypes[i])
		}
		if len(got.Sections[i].Products) > e.cfg.FeedSectionSize {
			t.Errorf("section[%d] has %d products, want <= %d",
				i, len(got.Sections[i].Products), e.cfg.FeedSectionSize)
		}
	}

	// 版块 2 不重复版块 1 的商品
	seen := make(map[string]bool)
	for _, c := range got.Sections[0].Products {
		seen[c.ID] = true
	}
	for _, c := range got.Sections[1].Products {
		if seen[c.ID] {
			t.Errorf("product %s appears in both section 1 and 2", c.ID)
		}
	}

	// 趋势版块来自 7d 窗口榜单
	if len(got.Sections[2].Products) != 3 || got.Sections[2].Products[0].ID != "b1" {
		t.Errorf("trending section = %v, want [b1 s1 d2]", got.Sections[2].Products)
	}
}

func TestDiscoveryFeed_ColdStart(t *testing.T) {
	e := testEngine(t)

	got, err := e.DiscoveryFeed(context.Background(), "stranger")
	if err != nil {
		t.Fatalf("DiscoveryFeed() error = %v", err)
	}
	// 版块 1 降级为热门榜，版块 2 为空，版块 3 正常
	if len(got.Sections[0].Products) != 3 {
		t.Errorf("section 1 has %d products, want 3 (popular fallback)", len(got.Sections[0].Products))
	}
	if len(got.Sections[1].Products) != 0 {
		t.Errorf("section 2 has %d products, want 0 for cold user", len(got.Sections[1].Products))
	}
	if len(got.Sections[2].Products) == 0 {
		t.Error("trending section empty for cold user")
	}
}

func TestGiftSuggestionsForList(t *testing.T) {
	e := testEngine(t)

	got, err := e.GiftSuggestionsForList(context.Background(), []string{"d1", "d2"}, 3, false)
	if err != nil {
		t.Fatalf("GiftSuggestionsForList() error = %v", err)
	}
	if got.EmptyList {
		t.Error("EmptyList = true for resolvable list")
	}
	for _, c := range got.Suggestions {
		if c.ID == "d1" || c.ID == "d2" {
			t.Errorf("suggestion %s is already on the list", c.ID)
		}
		if c.Reason == "" {
			t.Errorf("suggestion %s has no reason", c.ID)
		}
	}
	// 清单多数品类为 Dress，最相似的 d3 应拿到品类匹配理由
	if got.Suggestions[0].ID != "d3" || got.Suggestions[0].Reason != "Matches their love of dresss" {
		t.Errorf("top suggestion = %s %q", got.Suggestions[0].ID, got.Suggestions[0].Reason)
	}
}

func TestGiftSuggestionsForList_Empty(t *testing.T) {
	e := testEngine(t)

	tests := []struct {
		name string
		ids  []string
	}{
		{"nil list", nil},
		{"unresolvable list", []string{"ghost-1", "ghost-2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.GiftSuggestionsForList(context.Background(), tt.ids, 6, false)
			if err != nil {
				t.Fatalf("GiftSuggestionsForList() error = %v", err)
			}
			if !got.EmptyList {
				t.Error("EmptyList = false, want true")
			}
			if len(got.Suggestions) == 0 {
				t.Fatal("curated suggestions empty")
			}
			curated := map[string]bool{"Dress": true, "Sweater": true, "Bag": true}
			for _, c := range got.Suggestions {
				if !curated[c.Category()] {
					t.Errorf("curated suggestion %s category = %s", c.ID, c.Category())
				}
				want := "Popular " + map[string]string{
					"Dress": "dress", "Sweater": "sweater", "Bag": "bag",
				}[c.Category()] + " gift"
				if c.Reason != want {
					t.Errorf("reason = %q, want %q", c.Reason, want)
				}
			}
		})
	}
}

func TestGiftSuggestionsForUser(t *testing.T) {
	e := testEngine(t)

	got, err := e.GiftSuggestionsForUser(context.Background(), "alice", 3, 0, 0)
	if err != nil {
		t.Fatalf("GiftSuggestionsForUser() error = %v", err)
	}
	if got.EmptyList {
		t.Error("EmptyList = true for user with taste vector")
	}

	taboo := map[string]bool{"Underwear bottom": true, "Underwear Tights": true, "Socks": true}
	seen := make(map[string]bool)
	for _, c := range got.Suggestions {
		if taboo[c.Category()] {
			t.Errorf("suggestion %s has taboo category %s", c.ID, c.Category())
		}
		// 强制多样性：品类互不相同
		if seen[c.Category()] {
			t.Errorf("duplicate category %s", c.Category())
		}
		seen[c.Category()] = true

		if c.Reason == "" {
			t.Errorf("suggestion %s has no reason", c.ID)
		}
	}
}

func TestGiftSuggestionsForUser_TabooNeverReturned(t *testing.T) {
	e := testEngine(t)

	// sockfan 的口味落在禁选品类簇上，结果仍不得出现禁选品类
	got, err := e.GiftSuggestionsForUser(context.Background(), "sockfan", 5, 0, 0)
	if err != nil {
		t.Fatalf("GiftSuggestionsForUser() error = %v", err)
	}
	taboo := map[string]bool{"Underwear bottom": true, "Underwear Tights": true, "Socks": true}
	for _, c := range got.Suggestions {
		if taboo[c.Category()] {
			t.Errorf("suggestion %s has taboo category %s", c.ID, c.Category())
		}
	}
}

func TestGiftSuggestionsForUser_PriceBounds(t *testing.T) {
	e := testEngine(t)

	got, err := e.GiftSuggestionsForUser(context.Background(), "alice", 5, 60, 100)
	if err != nil {
		t.Fatalf("GiftSuggestionsForUser() error = %v", err)
	}
	for _, c := range got.Suggestions {
		if c.Product.Price < 60 || c.Product.Price > 100 {
			t.Errorf("suggestion %s price = %f, want in [60, 100]", c.ID, c.Product.Price)
		}
	}
}

func TestGiftSuggestionsForUser_ColdStart(t *testing.T) {
	e := testEngine(t)

	got, err := e.GiftSuggestionsForUser(context.Background(), "stranger", 5, 0, 0)
	if err != nil {
		t.Fatalf("GiftSuggestionsForUser() error = %v", err)
	}
	if !got.EmptyList {
		t.Error("EmptyList = false for user without taste vector")
	}
	if len(got.Suggestions) == 0 {
		t.Error("curated suggestions empty")
	}
}

func TestComputeFromCalibration(t *testing.T) {
	e := testEngine(t)

	got, err := e.ComputeFromCalibration(context.Background(), []string{"d1"}, []string{"s1"})
	if err != nil {
		t.Fatalf("ComputeFromCalibration() error = %v", err)
	}

	var norm float64
	for _, x := range got.TasteVector {
		norm += x * x
	}
	if math.Abs(math.Sqrt(norm)-1.0) > 1e-6 {
		t.Errorf("taste norm = %f, want 1.0", math.Sqrt(norm))
	}

	for _, c := range got.Recommendations {
		if c.ID == "d1" || c.ID == "s1" {
			t.Errorf("recommendation %s was swiped during calibration", c.ID)
		}
	}
	if len(got.Recommendations) == 0 {
		t.Error("no post-calibration recommendations")
	}
}

func TestComputeFromCalibration_InvalidInput(t *testing.T) {
	e := testEngine(t)

	_, err := e.ComputeFromCalibration(context.Background(), nil, []string{"s1"})
	if err == nil {
		t.Fatal("expected error for empty liked list")
	}
	if !core.IsInvalidInput(err) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestCalibrationSet(t *testing.T) {
	e := testEngine(t)

	got := e.CalibrationSet(6)
	if len(got) != 6 {
		t.Fatalf("CalibrationSet(6) = %d products, want 6", len(got))
	}

	// 最大品类（Dress）至少贡献最低抽样数
	perCategory := make(map[string]int)
	for _, p := range got {
		perCategory[p.Category]++
	}
	if perCategory["Dress"] < 2 {
		t.Errorf("Dress contributed %d products, want >= 2", perCategory["Dress"])
	}

	if got := e.CalibrationSet(0); got != nil {
		t.Errorf("CalibrationSet(0) = %v, want nil", got)
	}
}

func TestSaveTasteVector(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	// 无外部层：持久化失败，但缓存立即可读
	if e.SaveTasteVector(ctx, "newbie", []float64{0, 1, 0, 0}) {
		t.Error("SaveTasteVector() = true without external tiers")
	}

	got, err := e.PersonalizedCatalog(ctx, "newbie", Filters{}, 2)
	if err != nil {
		t.Fatalf("PersonalizedCatalog() error = %v", err)
	}
	if got.ColdStart {
		t.Error("ColdStart = true after SaveTasteVector")
	}
	// Sweater 簇用户的第一推荐是 s1
	if got.Products[0].ID != "s1" {
		t.Errorf("top product = %s, want s1", got.Products[0].ID)
	}
}
