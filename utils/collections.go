package utils

func ListToMap[T any, K comparable, V any](
	slice []T,
	keyFunc func(T) K,
	valueFunc func(T) V,
) map[K]V {
	result := make(map[K]V)

	for _, item := range slice {
		key := keyFunc(item)
		value := valueFunc(item)
		result[key] = value
	}

	return result
}

// GroupBy buckets items by key, keeping the input order inside each bucket and
// returning the keys in order of first appearance.
func GroupBy[T any, K comparable](slice []T, keyFunc func(T) K) ([]K, map[K][]T) {
	keys := make([]K, 0)
	groups := make(map[K][]T)

	for _, item := range slice {
		key := keyFunc(item)
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], item)
	}

	return keys, groups
}
