// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoc(t *testing.T) {
	l := Loc{Op: IF_ICMPLT, IID: 12, MID: 3}
	assert.Equal(t, l, l.Location())
	assert.Equal(t, CategoryBranch, l.Category())
	assert.Equal(t, "IF_ICMPLT@12/3", l.String())
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		name string
		ev   TraceEvent
		want Category
	}{
		{"nil", nil, CategoryInvalid},
		{"insn", &Insn{Loc{Op: IADD}}, CategoryArith},
		{"const", &Const{Loc: Loc{Op: LDC}, Value: Int(1)}, CategoryConst},
		{"jump", &Jump{Loc: Loc{Op: GOTO}, Label: 4}, CategoryJump},
		{"method", &MethodBegin{Loc: Loc{Op: METHOD_BEGIN, IID: NoID, MID: NoID}}, CategoryMethod},
		{"result", &Result{Loc: Loc{Op: GETVALUE}, Value: Void()}, CategoryValue},
		{"special", &Special{Loc: Loc{Op: SPECIAL}, Code: SpecialWarmUp}, CategorySpecial},
		{"zero loc", &Insn{}, CategoryInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryOf(tt.ev))
		})
	}
}

func TestIdentity(t *testing.T) {
	type node struct{ next *node }
	a, b := &node{}, &node{}
	s := []int{1, 2}
	m := map[string]int{}

	assert.Equal(t, Identity(a), Identity(a))
	assert.NotEqual(t, Identity(a), Identity(b))
	assert.NotZero(t, Identity(a))
	assert.NotZero(t, Identity(s))
	assert.NotZero(t, Identity(m))
	assert.Zero(t, Identity(nil))
	assert.Zero(t, Identity(42))
	assert.Zero(t, Identity("str"))
	assert.Zero(t, Identity((*node)(nil)))
}
