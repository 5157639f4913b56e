package gather_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reactive-go/reactrust/gather"
)

func TestCollect(t *testing.T) {
	fn := gather.Collect[int]()
	var v []int
	fn(1, &v)
	fn(2, &v)
	assert.Equal(t, []int{1, 2}, v)
}

func TestSum(t *testing.T) {
	fn := gather.Sum[int]()
	var v int
	fn(3, &v)
	fn(4, &v)
	assert.Equal(t, 7, v)
}

func TestLast(t *testing.T) {
	fn := gather.Last[string]()
	var v string
	fn("a", &v)
	fn("b", &v)
	assert.Equal(t, "b", v)
}

func TestCount(t *testing.T) {
	fn := gather.Count[struct{}]()
	var v int
	fn(struct{}{}, &v)
	fn(struct{}{}, &v)
	fn(struct{}{}, &v)
	assert.Equal(t, 3, v)
}
