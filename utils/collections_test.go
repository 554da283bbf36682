package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type pair struct {
	key   string
	value int
}

func TestListToMap(t *testing.T) {
	in := []pair{{"a", 1}, {"b", 2}, {"a", 3}}

	got := ListToMap(in,
		func(p pair) string { return p.key },
		func(p pair) int { return p.value },
	)

	assert.Equal(t, map[string]int{"a": 3, "b": 2}, got)
}

func TestGroupBy(t *testing.T) {
	in := []pair{{"img-b", 1}, {"img-a", 2}, {"img-b", 3}}

	keys, groups := GroupBy(in, func(p pair) string { return p.key })

	assert.Equal(t, []string{"img-b", "img-a"}, keys)
	assert.Equal(t, []pair{{"img-b", 1}, {"img-b", 3}}, groups["img-b"])
	assert.Equal(t, []pair{{"img-a", 2}}, groups["img-a"])
}
