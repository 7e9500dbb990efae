package utils

// Majority 返回出现次数最多的值，平局按首次出现顺序取先出现者。
// 空输入与空串元素被忽略；全部为空时返回 ""。
func Majority(values []string) string {
	counts := make(map[string]int, len(values))
	firstSeen := make(map[string]int, len(values))
	order := 0

	best := ""
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := firstSeen[v]; !ok {
			firstSeen[v] = order
			order++
		}
		counts[v]++

		if best == "" {
			best = v
			continue
		}
		if counts[v] > counts[best] ||
			(counts[v] == counts[best] && firstSeen[v] < firstSeen[best]) {
			best = v
		}
	}
	return best
}
