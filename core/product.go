package core

// Product 是商品目录中的一条只读记录。
// 加载完成后不可变，由 catalog 包持有；Price/Brand/URL 字段可能缺失（零值）。
type Product struct {
	ID         string  // 唯一且稳定的商品 ID
	Name       string  // 商品名称
	Category   string  // 品类（如 "Dress", "Sweater"）
	Color      string  // 颜色分组
	Price      float64 // 价格，>= 0；缺失时为 0
	Brand      string  // 品牌/系列，可为空
	ImageURL   string  // 图片地址，可为空
	ProductURL string  // 商品页地址，可为空
}
