// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

// Opcode identifies one event kind: a traced bytecode instruction or one of
// the synthetic method-boundary, value-production and control signals.
//
// Mnemonics follow the JVM instruction set the instrumentors emit, so the
// constant names keep their upper-case spelling.
type Opcode uint8

// Event kinds. The zero value is reserved so that an uninitialized Loc is
// recognisably invalid.
//
//nolint:revive,stylecheck // Instruction mnemonics are kept verbatim.
const (
	invalidOpcode Opcode = iota
	NOP
	ACONST_NULL
	ICONST_M1
	ICONST_0
	ICONST_1
	ICONST_2
	ICONST_3
	ICONST_4
	ICONST_5
	LCONST_0
	LCONST_1
	FCONST_0
	FCONST_1
	FCONST_2
	DCONST_0
	DCONST_1
	BIPUSH
	SIPUSH
	LDC
	ILOAD
	LLOAD
	FLOAD
	DLOAD
	ALOAD
	ISTORE
	LSTORE
	FSTORE
	DSTORE
	ASTORE
	IINC
	RET
	IALOAD
	LALOAD
	FALOAD
	DALOAD
	AALOAD
	BALOAD
	CALOAD
	SALOAD
	IASTORE
	LASTORE
	FASTORE
	DASTORE
	AASTORE
	BASTORE
	CASTORE
	SASTORE
	POP
	POP2
	DUP
	DUP_X1
	DUP_X2
	DUP2
	DUP2_X1
	DUP2_X2
	SWAP
	IADD
	LADD
	FADD
	DADD
	ISUB
	LSUB
	FSUB
	DSUB
	IMUL
	LMUL
	FMUL
	DMUL
	IDIV
	LDIV
	FDIV
	DDIV
	IREM
	LREM
	FREM
	DREM
	INEG
	LNEG
	FNEG
	DNEG
	ISHL
	LSHL
	ISHR
	LSHR
	IUSHR
	LUSHR
	IAND
	LAND
	IOR
	LOR
	IXOR
	LXOR
	I2L
	I2F
	I2D
	L2I
	L2F
	L2D
	F2I
	F2L
	F2D
	D2I
	D2L
	D2F
	I2B
	I2C
	I2S
	LCMP
	FCMPL
	FCMPG
	DCMPL
	DCMPG
	GOTO
	JSR
	IFEQ
	IFNE
	IFLT
	IFGE
	IFGT
	IFLE
	IF_ICMPEQ
	IF_ICMPNE
	IF_ICMPLT
	IF_ICMPGE
	IF_ICMPGT
	IF_ICMPLE
	IF_ACMPEQ
	IF_ACMPNE
	IFNULL
	IFNONNULL
	TABLESWITCH
	LOOKUPSWITCH
	IRETURN
	LRETURN
	FRETURN
	DRETURN
	ARETURN
	RETURN
	INVOKEVIRTUAL
	INVOKESPECIAL
	INVOKESTATIC
	INVOKEINTERFACE
	GETSTATIC
	PUTSTATIC
	GETFIELD
	PUTFIELD
	HEAPLOAD
	NEW
	NEWARRAY
	ANEWARRAY
	MULTIANEWARRAY
	CHECKCAST
	INSTANCEOF
	ARRAYLENGTH
	ATHROW
	MONITORENTER
	MONITOREXIT
	METHOD_BEGIN
	METHOD_THROW
	INVOKEMETHOD_EXCEPTION
	INVOKEMETHOD_END
	GETVALUE
	SPECIAL
	MAKE_SYMBOLIC

	numOpcodes
)

// Category groups event kinds that share a payload shape.
type Category uint8

// Event categories.
const (
	CategoryInvalid Category = iota
	CategoryNop
	CategoryConst
	CategoryLocal
	CategoryArrayLoad
	CategoryArrayStore
	CategoryStack
	CategoryArith
	CategoryConvert
	CategoryCompare
	CategoryJump
	CategoryBranch
	CategorySwitch
	CategoryReturn
	CategoryInvoke
	CategoryField
	CategoryHeap
	CategoryAlloc
	CategoryTypeCheck
	CategoryArrayLength
	CategoryThrow
	CategoryMonitor
	CategoryMethod
	CategoryValue
	CategorySpecial

	numCategories
)

var opcodeNames = [numOpcodes]string{
	NOP:                    "NOP",
	ACONST_NULL:            "ACONST_NULL",
	ICONST_M1:              "ICONST_M1",
	ICONST_0:               "ICONST_0",
	ICONST_1:               "ICONST_1",
	ICONST_2:               "ICONST_2",
	ICONST_3:               "ICONST_3",
	ICONST_4:               "ICONST_4",
	ICONST_5:               "ICONST_5",
	LCONST_0:               "LCONST_0",
	LCONST_1:               "LCONST_1",
	FCONST_0:               "FCONST_0",
	FCONST_1:               "FCONST_1",
	FCONST_2:               "FCONST_2",
	DCONST_0:               "DCONST_0",
	DCONST_1:               "DCONST_1",
	BIPUSH:                 "BIPUSH",
	SIPUSH:                 "SIPUSH",
	LDC:                    "LDC",
	ILOAD:                  "ILOAD",
	LLOAD:                  "LLOAD",
	FLOAD:                  "FLOAD",
	DLOAD:                  "DLOAD",
	ALOAD:                  "ALOAD",
	ISTORE:                 "ISTORE",
	LSTORE:                 "LSTORE",
	FSTORE:                 "FSTORE",
	DSTORE:                 "DSTORE",
	ASTORE:                 "ASTORE",
	IINC:                   "IINC",
	RET:                    "RET",
	IALOAD:                 "IALOAD",
	LALOAD:                 "LALOAD",
	FALOAD:                 "FALOAD",
	DALOAD:                 "DALOAD",
	AALOAD:                 "AALOAD",
	BALOAD:                 "BALOAD",
	CALOAD:                 "CALOAD",
	SALOAD:                 "SALOAD",
	IASTORE:                "IASTORE",
	LASTORE:                "LASTORE",
	FASTORE:                "FASTORE",
	DASTORE:                "DASTORE",
	AASTORE:                "AASTORE",
	BASTORE:                "BASTORE",
	CASTORE:                "CASTORE",
	SASTORE:                "SASTORE",
	POP:                    "POP",
	POP2:                   "POP2",
	DUP:                    "DUP",
	DUP_X1:                 "DUP_X1",
	DUP_X2:                 "DUP_X2",
	DUP2:                   "DUP2",
	DUP2_X1:                "DUP2_X1",
	DUP2_X2:                "DUP2_X2",
	SWAP:                   "SWAP",
	IADD:                   "IADD",
	LADD:                   "LADD",
	FADD:                   "FADD",
	DADD:                   "DADD",
	ISUB:                   "ISUB",
	LSUB:                   "LSUB",
	FSUB:                   "FSUB",
	DSUB:                   "DSUB",
	IMUL:                   "IMUL",
	LMUL:                   "LMUL",
	FMUL:                   "FMUL",
	DMUL:                   "DMUL",
	IDIV:                   "IDIV",
	LDIV:                   "LDIV",
	FDIV:                   "FDIV",
	DDIV:                   "DDIV",
	IREM:                   "IREM",
	LREM:                   "LREM",
	FREM:                   "FREM",
	DREM:                   "DREM",
	INEG:                   "INEG",
	LNEG:                   "LNEG",
	FNEG:                   "FNEG",
	DNEG:                   "DNEG",
	ISHL:                   "ISHL",
	LSHL:                   "LSHL",
	ISHR:                   "ISHR",
	LSHR:                   "LSHR",
	IUSHR:                  "IUSHR",
	LUSHR:                  "LUSHR",
	IAND:                   "IAND",
	LAND:                   "LAND",
	IOR:                    "IOR",
	LOR:                    "LOR",
	IXOR:                   "IXOR",
	LXOR:                   "LXOR",
	I2L:                    "I2L",
	I2F:                    "I2F",
	I2D:                    "I2D",
	L2I:                    "L2I",
	L2F:                    "L2F",
	L2D:                    "L2D",
	F2I:                    "F2I",
	F2L:                    "F2L",
	F2D:                    "F2D",
	D2I:                    "D2I",
	D2L:                    "D2L",
	D2F:                    "D2F",
	I2B:                    "I2B",
	I2C:                    "I2C",
	I2S:                    "I2S",
	LCMP:                   "LCMP",
	FCMPL:                  "FCMPL",
	FCMPG:                  "FCMPG",
	DCMPL:                  "DCMPL",
	DCMPG:                  "DCMPG",
	GOTO:                   "GOTO",
	JSR:                    "JSR",
	IFEQ:                   "IFEQ",
	IFNE:                   "IFNE",
	IFLT:                   "IFLT",
	IFGE:                   "IFGE",
	IFGT:                   "IFGT",
	IFLE:                   "IFLE",
	IF_ICMPEQ:              "IF_ICMPEQ",
	IF_ICMPNE:              "IF_ICMPNE",
	IF_ICMPLT:              "IF_ICMPLT",
	IF_ICMPGE:              "IF_ICMPGE",
	IF_ICMPGT:              "IF_ICMPGT",
	IF_ICMPLE:              "IF_ICMPLE",
	IF_ACMPEQ:              "IF_ACMPEQ",
	IF_ACMPNE:              "IF_ACMPNE",
	IFNULL:                 "IFNULL",
	IFNONNULL:              "IFNONNULL",
	TABLESWITCH:            "TABLESWITCH",
	LOOKUPSWITCH:           "LOOKUPSWITCH",
	IRETURN:                "IRETURN",
	LRETURN:                "LRETURN",
	FRETURN:                "FRETURN",
	DRETURN:                "DRETURN",
	ARETURN:                "ARETURN",
	RETURN:                 "RETURN",
	INVOKEVIRTUAL:          "INVOKEVIRTUAL",
	INVOKESPECIAL:          "INVOKESPECIAL",
	INVOKESTATIC:           "INVOKESTATIC",
	INVOKEINTERFACE:        "INVOKEINTERFACE",
	GETSTATIC:              "GETSTATIC",
	PUTSTATIC:              "PUTSTATIC",
	GETFIELD:               "GETFIELD",
	PUTFIELD:               "PUTFIELD",
	HEAPLOAD:               "HEAPLOAD",
	NEW:                    "NEW",
	NEWARRAY:               "NEWARRAY",
	ANEWARRAY:              "ANEWARRAY",
	MULTIANEWARRAY:         "MULTIANEWARRAY",
	CHECKCAST:              "CHECKCAST",
	INSTANCEOF:             "INSTANCEOF",
	ARRAYLENGTH:            "ARRAYLENGTH",
	ATHROW:                 "ATHROW",
	MONITORENTER:           "MONITORENTER",
	MONITOREXIT:            "MONITOREXIT",
	METHOD_BEGIN:           "METHOD_BEGIN",
	METHOD_THROW:           "METHOD_THROW",
	INVOKEMETHOD_EXCEPTION: "INVOKEMETHOD_EXCEPTION",
	INVOKEMETHOD_END:       "INVOKEMETHOD_END",
	GETVALUE:               "GETVALUE",
	SPECIAL:                "SPECIAL",
	MAKE_SYMBOLIC:          "MAKE_SYMBOLIC",
}

var opcodeCategories = [numOpcodes]Category{
	NOP:                    CategoryNop,
	ACONST_NULL:            CategoryConst,
	ICONST_M1:              CategoryConst,
	ICONST_0:               CategoryConst,
	ICONST_1:               CategoryConst,
	ICONST_2:               CategoryConst,
	ICONST_3:               CategoryConst,
	ICONST_4:               CategoryConst,
	ICONST_5:               CategoryConst,
	LCONST_0:               CategoryConst,
	LCONST_1:               CategoryConst,
	FCONST_0:               CategoryConst,
	FCONST_1:               CategoryConst,
	FCONST_2:               CategoryConst,
	DCONST_0:               CategoryConst,
	DCONST_1:               CategoryConst,
	BIPUSH:                 CategoryConst,
	SIPUSH:                 CategoryConst,
	LDC:                    CategoryConst,
	ILOAD:                  CategoryLocal,
	LLOAD:                  CategoryLocal,
	FLOAD:                  CategoryLocal,
	DLOAD:                  CategoryLocal,
	ALOAD:                  CategoryLocal,
	ISTORE:                 CategoryLocal,
	LSTORE:                 CategoryLocal,
	FSTORE:                 CategoryLocal,
	DSTORE:                 CategoryLocal,
	ASTORE:                 CategoryLocal,
	IINC:                   CategoryLocal,
	RET:                    CategoryLocal,
	IALOAD:                 CategoryArrayLoad,
	LALOAD:                 CategoryArrayLoad,
	FALOAD:                 CategoryArrayLoad,
	DALOAD:                 CategoryArrayLoad,
	AALOAD:                 CategoryArrayLoad,
	BALOAD:                 CategoryArrayLoad,
	CALOAD:                 CategoryArrayLoad,
	SALOAD:                 CategoryArrayLoad,
	IASTORE:                CategoryArrayStore,
	LASTORE:                CategoryArrayStore,
	FASTORE:                CategoryArrayStore,
	DASTORE:                CategoryArrayStore,
	AASTORE:                CategoryArrayStore,
	BASTORE:                CategoryArrayStore,
	CASTORE:                CategoryArrayStore,
	SASTORE:                CategoryArrayStore,
	POP:                    CategoryStack,
	POP2:                   CategoryStack,
	DUP:                    CategoryStack,
	DUP_X1:                 CategoryStack,
	DUP_X2:                 CategoryStack,
	DUP2:                   CategoryStack,
	DUP2_X1:                CategoryStack,
	DUP2_X2:                CategoryStack,
	SWAP:                   CategoryStack,
	IADD:                   CategoryArith,
	LADD:                   CategoryArith,
	FADD:                   CategoryArith,
	DADD:                   CategoryArith,
	ISUB:                   CategoryArith,
	LSUB:                   CategoryArith,
	FSUB:                   CategoryArith,
	DSUB:                   CategoryArith,
	IMUL:                   CategoryArith,
	LMUL:                   CategoryArith,
	FMUL:                   CategoryArith,
	DMUL:                   CategoryArith,
	IDIV:                   CategoryArith,
	LDIV:                   CategoryArith,
	FDIV:                   CategoryArith,
	DDIV:                   CategoryArith,
	IREM:                   CategoryArith,
	LREM:                   CategoryArith,
	FREM:                   CategoryArith,
	DREM:                   CategoryArith,
	INEG:                   CategoryArith,
	LNEG:                   CategoryArith,
	FNEG:                   CategoryArith,
	DNEG:                   CategoryArith,
	ISHL:                   CategoryArith,
	LSHL:                   CategoryArith,
	ISHR:                   CategoryArith,
	LSHR:                   CategoryArith,
	IUSHR:                  CategoryArith,
	LUSHR:                  CategoryArith,
	IAND:                   CategoryArith,
	LAND:                   CategoryArith,
	IOR:                    CategoryArith,
	LOR:                    CategoryArith,
	IXOR:                   CategoryArith,
	LXOR:                   CategoryArith,
	I2L:                    CategoryConvert,
	I2F:                    CategoryConvert,
	I2D:                    CategoryConvert,
	L2I:                    CategoryConvert,
	L2F:                    CategoryConvert,
	L2D:                    CategoryConvert,
	F2I:                    CategoryConvert,
	F2L:                    CategoryConvert,
	F2D:                    CategoryConvert,
	D2I:                    CategoryConvert,
	D2L:                    CategoryConvert,
	D2F:                    CategoryConvert,
	I2B:                    CategoryConvert,
	I2C:                    CategoryConvert,
	I2S:                    CategoryConvert,
	LCMP:                   CategoryCompare,
	FCMPL:                  CategoryCompare,
	FCMPG:                  CategoryCompare,
	DCMPL:                  CategoryCompare,
	DCMPG:                  CategoryCompare,
	GOTO:                   CategoryJump,
	JSR:                    CategoryJump,
	IFEQ:                   CategoryBranch,
	IFNE:                   CategoryBranch,
	IFLT:                   CategoryBranch,
	IFGE:                   CategoryBranch,
	IFGT:                   CategoryBranch,
	IFLE:                   CategoryBranch,
	IF_ICMPEQ:              CategoryBranch,
	IF_ICMPNE:              CategoryBranch,
	IF_ICMPLT:              CategoryBranch,
	IF_ICMPGE:              CategoryBranch,
	IF_ICMPGT:              CategoryBranch,
	IF_ICMPLE:              CategoryBranch,
	IF_ACMPEQ:              CategoryBranch,
	IF_ACMPNE:              CategoryBranch,
	IFNULL:                 CategoryBranch,
	IFNONNULL:              CategoryBranch,
	TABLESWITCH:            CategorySwitch,
	LOOKUPSWITCH:           CategorySwitch,
	IRETURN:                CategoryReturn,
	LRETURN:                CategoryReturn,
	FRETURN:                CategoryReturn,
	DRETURN:                CategoryReturn,
	ARETURN:                CategoryReturn,
	RETURN:                 CategoryReturn,
	INVOKEVIRTUAL:          CategoryInvoke,
	INVOKESPECIAL:          CategoryInvoke,
	INVOKESTATIC:           CategoryInvoke,
	INVOKEINTERFACE:        CategoryInvoke,
	GETSTATIC:              CategoryField,
	PUTSTATIC:              CategoryField,
	GETFIELD:               CategoryField,
	PUTFIELD:               CategoryField,
	HEAPLOAD:               CategoryHeap,
	NEW:                    CategoryAlloc,
	NEWARRAY:               CategoryAlloc,
	ANEWARRAY:              CategoryAlloc,
	MULTIANEWARRAY:         CategoryAlloc,
	CHECKCAST:              CategoryTypeCheck,
	INSTANCEOF:             CategoryTypeCheck,
	ARRAYLENGTH:            CategoryArrayLength,
	ATHROW:                 CategoryThrow,
	MONITORENTER:           CategoryMonitor,
	MONITOREXIT:            CategoryMonitor,
	METHOD_BEGIN:           CategoryMethod,
	METHOD_THROW:           CategoryMethod,
	INVOKEMETHOD_EXCEPTION: CategoryMethod,
	INVOKEMETHOD_END:       CategoryMethod,
	GETVALUE:               CategoryValue,
	SPECIAL:                CategorySpecial,
	MAKE_SYMBOLIC:          CategorySpecial,
}

var categoryNames = [numCategories]string{
	CategoryInvalid:     "Invalid",
	CategoryNop:         "Nop",
	CategoryConst:       "Const",
	CategoryLocal:       "Local",
	CategoryArrayLoad:   "ArrayLoad",
	CategoryArrayStore:  "ArrayStore",
	CategoryStack:       "Stack",
	CategoryArith:       "Arith",
	CategoryConvert:     "Convert",
	CategoryCompare:     "Compare",
	CategoryJump:        "Jump",
	CategoryBranch:      "Branch",
	CategorySwitch:      "Switch",
	CategoryReturn:      "Return",
	CategoryInvoke:      "Invoke",
	CategoryField:       "Field",
	CategoryHeap:        "Heap",
	CategoryAlloc:       "Alloc",
	CategoryTypeCheck:   "TypeCheck",
	CategoryArrayLength: "ArrayLength",
	CategoryThrow:       "Throw",
	CategoryMonitor:     "Monitor",
	CategoryMethod:      "Method",
	CategoryValue:       "Value",
	CategorySpecial:     "Special",
}

// Valid reports whether op names a defined event kind.
func (op Opcode) Valid() bool {
	return op > invalidOpcode && op < numOpcodes
}

// String returns the instruction mnemonic, e.g. "IF_ICMPLT".
func (op Opcode) String() string {
	if !op.Valid() {
		return "INVALID"
	}
	return opcodeNames[op]
}

// Category returns the payload category of op, or CategoryInvalid.
func (op Opcode) Category() Category {
	if !op.Valid() {
		return CategoryInvalid
	}
	return opcodeCategories[op]
}

// Is reports whether op belongs to category c.
func (op Opcode) Is(c Category) bool {
	return c != CategoryInvalid && op.Category() == c
}

// Valid reports whether c names a defined category.
func (c Category) Valid() bool {
	return c > CategoryInvalid && c < numCategories
}

// String returns the category name, e.g. "Branch".
func (c Category) String() string {
	if c >= numCategories {
		return "Invalid"
	}
	return categoryNames[c]
}

// Opcodes returns every defined event kind in declaration order.
func Opcodes() []Opcode {
	ops := make([]Opcode, 0, numOpcodes-1)
	for op := invalidOpcode + 1; op < numOpcodes; op++ {
		ops = append(ops, op)
	}
	return ops
}

// Categories returns every defined category in declaration order.
func Categories() []Category {
	cats := make([]Category, 0, numCategories-1)
	for c := CategoryInvalid + 1; c < numCategories; c++ {
		cats = append(cats, c)
	}
	return cats
}

// Lookup returns the opcode with the given mnemonic.
func Lookup(mnemonic string) (Opcode, bool) {
	op, ok := opcodesByName[mnemonic]
	return op, ok
}

var opcodesByName = func() map[string]Opcode {
	m := make(map[string]Opcode, numOpcodes)
	for op := invalidOpcode + 1; op < numOpcodes; op++ {
		m[opcodeNames[op]] = op
	}
	return m
}()
