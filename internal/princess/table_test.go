package princess

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableValues(t *testing.T) {
	tests := []struct {
		penalty int64
		want    []int64
	}{
		{penalty: 0, want: []int64{1, 2, 4, 8, 16, 32}},
		{penalty: 1, want: []int64{1, 2, 3, 5, 8, 13, 21}},
		{penalty: 2, want: []int64{1, 2, 3, 4, 6, 9, 13}},
		{penalty: 100, want: []int64{1, 2, 3, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("S=%d", tt.penalty), func(t *testing.T) {
			tab := NewTable(int64(len(tt.want)-1), tt.penalty)
			for b, want := range tt.want {
				assert.Equal(t, want, tab.At(int64(b)), "T(%d)", b)
			}
			assert.Equal(t, int64(1), tab.At(-3))
		})
	}
}

func TestTableScenarios(t *testing.T) {
	assert.Equal(t, int64(3), NewTable(2, 1).At(2))
	assert.Equal(t, int64(1013), NewTable(72, 31).At(72))

	assert.True(t, Scenario{Mattresses: 2, Nights: 2, Penalty: 1}.Feasible())
	assert.True(t, Scenario{Mattresses: 1000, Nights: 72, Penalty: 31}.Feasible())
	assert.False(t, Scenario{Mattresses: 1014, Nights: 72, Penalty: 31}.Feasible())
}

func TestTableSaturates(t *testing.T) {
	tab := NewTable(200, 0)
	assert.Equal(t, int64(1<<62), tab.At(62))
	assert.Equal(t, int64(9223372036854775807), tab.At(63))
	assert.Equal(t, int64(9223372036854775807), tab.At(200))
}

func TestTableNeed(t *testing.T) {
	tab := NewTable(10, 1)

	assert.Equal(t, int64(0), tab.Need(1))
	assert.Equal(t, int64(1), tab.Need(2))
	for b := int64(1); b <= 10; b++ {
		assert.Equal(t, b, tab.Need(tab.At(b)), "Need(T(%d))", b)
		assert.Equal(t, b, tab.Need(tab.At(b-1)+1), "Need(T(%d)+1)", b-1)
	}
	assert.Equal(t, int64(11), tab.Need(tab.At(10)+1))
}

// solvable decides by exhaustive game search whether m mattresses can be
// resolved with b planning nights against a judge that answers adaptively.
func solvable(memo map[[2]int64]bool, m, b, penalty int64) bool {
	if m == 1 {
		return true
	}
	if b <= 0 {
		return false
	}
	key := [2]int64{m, b}
	if v, ok := memo[key]; ok {
		return v
	}
	res := false
	for q := int64(1); q < m && !res; q++ {
		miss := solvable(memo, m-q, b-1, penalty)
		hit := q == 1 || solvable(memo, q, b-1-penalty, penalty)
		res = miss && hit
	}
	memo[key] = res
	return res
}

func TestTableIsTight(t *testing.T) {
	for penalty := int64(0); penalty <= 3; penalty++ {
		tab := NewTable(8, penalty)
		memo := make(map[[2]int64]bool)
		for b := int64(0); b <= 8; b++ {
			capacity := tab.At(b)
			if capacity > 300 {
				continue
			}
			assert.True(t, solvable(memo, capacity, b, penalty), "S=%d b=%d m=%d", penalty, b, capacity)
			assert.False(t, solvable(memo, capacity+1, b, penalty), "S=%d b=%d m=%d", penalty, b, capacity+1)
		}
	}
}

func TestSplitKeepsBothSidesResolvable(t *testing.T) {
	for penalty := int64(0); penalty <= 5; penalty++ {
		tab := NewTable(40, penalty)
		for b := int64(1); b <= 40; b++ {
			upper := min(tab.At(b), 2000)
			for m := int64(2); m <= upper; m++ {
				q := tab.Split(m, b)
				require.GreaterOrEqual(t, q, int64(1))
				require.LessOrEqual(t, q, m-1)
				require.LessOrEqual(t, m-q, tab.At(b-1), "miss side: S=%d b=%d m=%d q=%d", penalty, b, m, q)
				if q > 1 {
					require.LessOrEqual(t, q, tab.At(b-1-penalty), "hit side: S=%d b=%d m=%d q=%d", penalty, b, m, q)
				}
			}
		}
	}
}

func TestSplitRows(t *testing.T) {
	tab := NewTable(72, 31)

	// Enough nights to try one mattress at a time.
	assert.Equal(t, int64(1), tab.Split(5, 4))
	assert.Equal(t, int64(1), tab.Split(2, 2))

	// No penalty: halve.
	halves := NewTable(20, 0)
	assert.Equal(t, int64(50), halves.Split(100, 7))
	assert.Equal(t, int64(51), halves.Split(101, 7))

	// Otherwise the hit side is sized by T(b−1−S).
	assert.Equal(t, tab.At(72-1-31), tab.Split(1000, 72))

	// Never the whole window.
	assert.Equal(t, int64(1), tab.Split(2, 0))
	assert.Panics(t, func() { tab.Split(1, 5) })
}

func TestScenarioValidate(t *testing.T) {
	tests := []struct {
		name    string
		sc      Scenario
		wantErr bool
	}{
		{name: "Minimal", sc: Scenario{Mattresses: 1}},
		{name: "Largest", sc: Scenario{Mattresses: MaxMattresses, Nights: 1 << 40, Penalty: 1 << 40}},
		{name: "No mattresses", sc: Scenario{Mattresses: 0, Nights: 3}, wantErr: true},
		{name: "Too many mattresses", sc: Scenario{Mattresses: MaxMattresses + 1}, wantErr: true},
		{name: "Negative nights", sc: Scenario{Mattresses: 3, Nights: -1}, wantErr: true},
		{name: "Negative penalty", sc: Scenario{Mattresses: 3, Penalty: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sc.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrScenario)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
