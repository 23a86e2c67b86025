// Copyright 2025 The snoop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snoop

import "github.com/kolkov/snoop/snoop/event"

// Instruction entries. Instrumented code calls the entry named after each
// traced instruction, passing the instruction id and method id assigned by
// the instrumentor. Every entry routes to the default dispatcher and returns
// immediately when the calling goroutine is not being traced. Entry names
// are the instruction mnemonics and keep their upper-case spelling.

// === Operand-free instructions ===

// NOP traces an instruction that does nothing.
func NOP(iid, mid int32) {
	Default().Insn(event.NOP, iid, mid)
}

// ACONST_NULL pushes the null reference.
func ACONST_NULL(iid, mid int32) {
	Default().Insn(event.ACONST_NULL, iid, mid)
}

// ICONST_M1 pushes the int constant -1.
func ICONST_M1(iid, mid int32) {
	Default().Insn(event.ICONST_M1, iid, mid)
}

// ICONST_0 pushes the int constant 0.
func ICONST_0(iid, mid int32) {
	Default().Insn(event.ICONST_0, iid, mid)
}

// ICONST_1 pushes the int constant 1.
func ICONST_1(iid, mid int32) {
	Default().Insn(event.ICONST_1, iid, mid)
}

// ICONST_2 pushes the int constant 2.
func ICONST_2(iid, mid int32) {
	Default().Insn(event.ICONST_2, iid, mid)
}

// ICONST_3 pushes the int constant 3.
func ICONST_3(iid, mid int32) {
	Default().Insn(event.ICONST_3, iid, mid)
}

// ICONST_4 pushes the int constant 4.
func ICONST_4(iid, mid int32) {
	Default().Insn(event.ICONST_4, iid, mid)
}

// ICONST_5 pushes the int constant 5.
func ICONST_5(iid, mid int32) {
	Default().Insn(event.ICONST_5, iid, mid)
}

// LCONST_0 pushes the long constant 0.
func LCONST_0(iid, mid int32) {
	Default().Insn(event.LCONST_0, iid, mid)
}

// LCONST_1 pushes the long constant 1.
func LCONST_1(iid, mid int32) {
	Default().Insn(event.LCONST_1, iid, mid)
}

// FCONST_0 pushes the float constant 0.
func FCONST_0(iid, mid int32) {
	Default().Insn(event.FCONST_0, iid, mid)
}

// FCONST_1 pushes the float constant 1.
func FCONST_1(iid, mid int32) {
	Default().Insn(event.FCONST_1, iid, mid)
}

// FCONST_2 pushes the float constant 2.
func FCONST_2(iid, mid int32) {
	Default().Insn(event.FCONST_2, iid, mid)
}

// DCONST_0 pushes the double constant 0.
func DCONST_0(iid, mid int32) {
	Default().Insn(event.DCONST_0, iid, mid)
}

// DCONST_1 pushes the double constant 1.
func DCONST_1(iid, mid int32) {
	Default().Insn(event.DCONST_1, iid, mid)
}

// IALOAD loads an int element from an array.
func IALOAD(iid, mid int32) {
	Default().Insn(event.IALOAD, iid, mid)
}

// LALOAD loads a long element from an array.
func LALOAD(iid, mid int32) {
	Default().Insn(event.LALOAD, iid, mid)
}

// FALOAD loads a float element from an array.
func FALOAD(iid, mid int32) {
	Default().Insn(event.FALOAD, iid, mid)
}

// DALOAD loads a double element from an array.
func DALOAD(iid, mid int32) {
	Default().Insn(event.DALOAD, iid, mid)
}

// AALOAD loads a reference element from an array.
func AALOAD(iid, mid int32) {
	Default().Insn(event.AALOAD, iid, mid)
}

// BALOAD loads a byte or boolean element from an array.
func BALOAD(iid, mid int32) {
	Default().Insn(event.BALOAD, iid, mid)
}

// CALOAD loads a char element from an array.
func CALOAD(iid, mid int32) {
	Default().Insn(event.CALOAD, iid, mid)
}

// SALOAD loads a short element from an array.
func SALOAD(iid, mid int32) {
	Default().Insn(event.SALOAD, iid, mid)
}

// IASTORE stores an int element into an array.
func IASTORE(iid, mid int32) {
	Default().Insn(event.IASTORE, iid, mid)
}

// LASTORE stores a long element into an array.
func LASTORE(iid, mid int32) {
	Default().Insn(event.LASTORE, iid, mid)
}

// FASTORE stores a float element into an array.
func FASTORE(iid, mid int32) {
	Default().Insn(event.FASTORE, iid, mid)
}

// DASTORE stores a double element into an array.
func DASTORE(iid, mid int32) {
	Default().Insn(event.DASTORE, iid, mid)
}

// AASTORE stores a reference element into an array.
func AASTORE(iid, mid int32) {
	Default().Insn(event.AASTORE, iid, mid)
}

// BASTORE stores a byte or boolean element into an array.
func BASTORE(iid, mid int32) {
	Default().Insn(event.BASTORE, iid, mid)
}

// CASTORE stores a char element into an array.
func CASTORE(iid, mid int32) {
	Default().Insn(event.CASTORE, iid, mid)
}

// SASTORE stores a short element into an array.
func SASTORE(iid, mid int32) {
	Default().Insn(event.SASTORE, iid, mid)
}

// POP discards the top stack value.
func POP(iid, mid int32) {
	Default().Insn(event.POP, iid, mid)
}

// POP2 discards the top one or two stack values.
func POP2(iid, mid int32) {
	Default().Insn(event.POP2, iid, mid)
}

// DUP duplicates the top stack value.
func DUP(iid, mid int32) {
	Default().Insn(event.DUP, iid, mid)
}

// DUP_X1 duplicates the top stack value and inserts it two values down.
func DUP_X1(iid, mid int32) {
	Default().Insn(event.DUP_X1, iid, mid)
}

// DUP_X2 duplicates the top stack value and inserts it two or three values down.
func DUP_X2(iid, mid int32) {
	Default().Insn(event.DUP_X2, iid, mid)
}

// DUP2 duplicates the top one or two stack values.
func DUP2(iid, mid int32) {
	Default().Insn(event.DUP2, iid, mid)
}

// DUP2_X1 duplicates the top one or two stack values and inserts them beneath the next value.
func DUP2_X1(iid, mid int32) {
	Default().Insn(event.DUP2_X1, iid, mid)
}

// DUP2_X2 duplicates the top one or two stack values and inserts them beneath the next one or two values.
func DUP2_X2(iid, mid int32) {
	Default().Insn(event.DUP2_X2, iid, mid)
}

// SWAP swaps the top two stack values.
func SWAP(iid, mid int32) {
	Default().Insn(event.SWAP, iid, mid)
}

// IADD adds two ints.
func IADD(iid, mid int32) {
	Default().Insn(event.IADD, iid, mid)
}

// LADD adds two longs.
func LADD(iid, mid int32) {
	Default().Insn(event.LADD, iid, mid)
}

// FADD adds two floats.
func FADD(iid, mid int32) {
	Default().Insn(event.FADD, iid, mid)
}

// DADD adds two doubles.
func DADD(iid, mid int32) {
	Default().Insn(event.DADD, iid, mid)
}

// ISUB subtracts two ints.
func ISUB(iid, mid int32) {
	Default().Insn(event.ISUB, iid, mid)
}

// LSUB subtracts two longs.
func LSUB(iid, mid int32) {
	Default().Insn(event.LSUB, iid, mid)
}

// FSUB subtracts two floats.
func FSUB(iid, mid int32) {
	Default().Insn(event.FSUB, iid, mid)
}

// DSUB subtracts two doubles.
func DSUB(iid, mid int32) {
	Default().Insn(event.DSUB, iid, mid)
}

// IMUL multiplies two ints.
func IMUL(iid, mid int32) {
	Default().Insn(event.IMUL, iid, mid)
}

// LMUL multiplies two longs.
func LMUL(iid, mid int32) {
	Default().Insn(event.LMUL, iid, mid)
}

// FMUL multiplies two floats.
func FMUL(iid, mid int32) {
	Default().Insn(event.FMUL, iid, mid)
}

// DMUL multiplies two doubles.
func DMUL(iid, mid int32) {
	Default().Insn(event.DMUL, iid, mid)
}

// IDIV divides two ints.
func IDIV(iid, mid int32) {
	Default().Insn(event.IDIV, iid, mid)
}

// LDIV divides two longs.
func LDIV(iid, mid int32) {
	Default().Insn(event.LDIV, iid, mid)
}

// FDIV divides two floats.
func FDIV(iid, mid int32) {
	Default().Insn(event.FDIV, iid, mid)
}

// DDIV divides two doubles.
func DDIV(iid, mid int32) {
	Default().Insn(event.DDIV, iid, mid)
}

// IREM takes the remainder of two ints.
func IREM(iid, mid int32) {
	Default().Insn(event.IREM, iid, mid)
}

// LREM takes the remainder of two longs.
func LREM(iid, mid int32) {
	Default().Insn(event.LREM, iid, mid)
}

// FREM takes the remainder of two floats.
func FREM(iid, mid int32) {
	Default().Insn(event.FREM, iid, mid)
}

// DREM takes the remainder of two doubles.
func DREM(iid, mid int32) {
	Default().Insn(event.DREM, iid, mid)
}

// INEG negates an int.
func INEG(iid, mid int32) {
	Default().Insn(event.INEG, iid, mid)
}

// LNEG negates a long.
func LNEG(iid, mid int32) {
	Default().Insn(event.LNEG, iid, mid)
}

// FNEG negates a float.
func FNEG(iid, mid int32) {
	Default().Insn(event.FNEG, iid, mid)
}

// DNEG negates a double.
func DNEG(iid, mid int32) {
	Default().Insn(event.DNEG, iid, mid)
}

// ISHL shifts an int left.
func ISHL(iid, mid int32) {
	Default().Insn(event.ISHL, iid, mid)
}

// LSHL shifts a long left.
func LSHL(iid, mid int32) {
	Default().Insn(event.LSHL, iid, mid)
}

// ISHR shifts an int right arithmetically.
func ISHR(iid, mid int32) {
	Default().Insn(event.ISHR, iid, mid)
}

// LSHR shifts a long right arithmetically.
func LSHR(iid, mid int32) {
	Default().Insn(event.LSHR, iid, mid)
}

// IUSHR shifts an int right logically.
func IUSHR(iid, mid int32) {
	Default().Insn(event.IUSHR, iid, mid)
}

// LUSHR shifts a long right logically.
func LUSHR(iid, mid int32) {
	Default().Insn(event.LUSHR, iid, mid)
}

// IAND computes the bitwise and of two ints.
func IAND(iid, mid int32) {
	Default().Insn(event.IAND, iid, mid)
}

// LAND computes the bitwise and of two longs.
func LAND(iid, mid int32) {
	Default().Insn(event.LAND, iid, mid)
}

// IOR computes the bitwise or of two ints.
func IOR(iid, mid int32) {
	Default().Insn(event.IOR, iid, mid)
}

// LOR computes the bitwise or of two longs.
func LOR(iid, mid int32) {
	Default().Insn(event.LOR, iid, mid)
}

// IXOR computes the bitwise xor of two ints.
func IXOR(iid, mid int32) {
	Default().Insn(event.IXOR, iid, mid)
}

// LXOR computes the bitwise xor of two longs.
func LXOR(iid, mid int32) {
	Default().Insn(event.LXOR, iid, mid)
}

// I2L converts an int to a long.
func I2L(iid, mid int32) {
	Default().Insn(event.I2L, iid, mid)
}

// I2F converts an int to a float.
func I2F(iid, mid int32) {
	Default().Insn(event.I2F, iid, mid)
}

// I2D converts an int to a double.
func I2D(iid, mid int32) {
	Default().Insn(event.I2D, iid, mid)
}

// L2I converts a long to an int.
func L2I(iid, mid int32) {
	Default().Insn(event.L2I, iid, mid)
}

// L2F converts a long to a float.
func L2F(iid, mid int32) {
	Default().Insn(event.L2F, iid, mid)
}

// L2D converts a long to a double.
func L2D(iid, mid int32) {
	Default().Insn(event.L2D, iid, mid)
}

// F2I converts a float to an int.
func F2I(iid, mid int32) {
	Default().Insn(event.F2I, iid, mid)
}

// F2L converts a float to a long.
func F2L(iid, mid int32) {
	Default().Insn(event.F2L, iid, mid)
}

// F2D converts a float to a double.
func F2D(iid, mid int32) {
	Default().Insn(event.F2D, iid, mid)
}

// D2I converts a double to an int.
func D2I(iid, mid int32) {
	Default().Insn(event.D2I, iid, mid)
}

// D2L converts a double to a long.
func D2L(iid, mid int32) {
	Default().Insn(event.D2L, iid, mid)
}

// D2F converts a double to a float.
func D2F(iid, mid int32) {
	Default().Insn(event.D2F, iid, mid)
}

// I2B converts an int to a byte.
func I2B(iid, mid int32) {
	Default().Insn(event.I2B, iid, mid)
}

// I2C converts an int to a char.
func I2C(iid, mid int32) {
	Default().Insn(event.I2C, iid, mid)
}

// I2S converts an int to a short.
func I2S(iid, mid int32) {
	Default().Insn(event.I2S, iid, mid)
}

// LCMP compares two longs.
func LCMP(iid, mid int32) {
	Default().Insn(event.LCMP, iid, mid)
}

// FCMPL compares two floats, yielding -1 on NaN.
func FCMPL(iid, mid int32) {
	Default().Insn(event.FCMPL, iid, mid)
}

// FCMPG compares two floats, yielding 1 on NaN.
func FCMPG(iid, mid int32) {
	Default().Insn(event.FCMPG, iid, mid)
}

// DCMPL compares two doubles, yielding -1 on NaN.
func DCMPL(iid, mid int32) {
	Default().Insn(event.DCMPL, iid, mid)
}

// DCMPG compares two doubles, yielding 1 on NaN.
func DCMPG(iid, mid int32) {
	Default().Insn(event.DCMPG, iid, mid)
}

// IRETURN returns an int from the current method.
func IRETURN(iid, mid int32) {
	Default().Insn(event.IRETURN, iid, mid)
}

// LRETURN returns a long from the current method.
func LRETURN(iid, mid int32) {
	Default().Insn(event.LRETURN, iid, mid)
}

// FRETURN returns a float from the current method.
func FRETURN(iid, mid int32) {
	Default().Insn(event.FRETURN, iid, mid)
}

// DRETURN returns a double from the current method.
func DRETURN(iid, mid int32) {
	Default().Insn(event.DRETURN, iid, mid)
}

// ARETURN returns a reference from the current method.
func ARETURN(iid, mid int32) {
	Default().Insn(event.ARETURN, iid, mid)
}

// RETURN returns void from the current method.
func RETURN(iid, mid int32) {
	Default().Insn(event.RETURN, iid, mid)
}

// ARRAYLENGTH pushes the length of an array.
func ARRAYLENGTH(iid, mid int32) {
	Default().Insn(event.ARRAYLENGTH, iid, mid)
}

// ATHROW throws an exception object.
func ATHROW(iid, mid int32) {
	Default().Insn(event.ATHROW, iid, mid)
}

// MONITORENTER enters the monitor of an object.
func MONITORENTER(iid, mid int32) {
	Default().Insn(event.MONITORENTER, iid, mid)
}

// MONITOREXIT exits the monitor of an object.
func MONITOREXIT(iid, mid int32) {
	Default().Insn(event.MONITOREXIT, iid, mid)
}

// === Constants ===

// BIPUSH pushes a byte-range int.
func BIPUSH(iid, mid, value int32) {
	Default().Const(event.BIPUSH, iid, mid, event.Int(value))
}

// SIPUSH pushes a short-range int.
func SIPUSH(iid, mid, value int32) {
	Default().Const(event.SIPUSH, iid, mid, event.Int(value))
}

// LDC_int pushes an int constant from the constant pool.
func LDC_int(iid, mid int32, value int32) {
	Default().Const(event.LDC, iid, mid, event.Int(value))
}

// LDC_long pushes a long constant from the constant pool.
func LDC_long(iid, mid int32, value int64) {
	Default().Const(event.LDC, iid, mid, event.Long(value))
}

// LDC_float pushes a float constant from the constant pool.
func LDC_float(iid, mid int32, value float32) {
	Default().Const(event.LDC, iid, mid, event.Float(value))
}

// LDC_double pushes a double constant from the constant pool.
func LDC_double(iid, mid int32, value float64) {
	Default().Const(event.LDC, iid, mid, event.Double(value))
}

// LDC_String pushes a string constant.
func LDC_String(iid, mid int32, value string) {
	Default().Const(event.LDC, iid, mid, event.String(value))
}

// LDC_Object pushes a reference constant such as a class literal.
func LDC_Object(iid, mid int32, value any) {
	Default().Const(event.LDC, iid, mid, event.Object(value))
}

// === Local variables ===

// ILOAD loads an int from the local at slot.
func ILOAD(iid, mid, slot int32) {
	Default().Var(event.ILOAD, iid, mid, slot)
}

// LLOAD loads a long from the local at slot.
func LLOAD(iid, mid, slot int32) {
	Default().Var(event.LLOAD, iid, mid, slot)
}

// FLOAD loads a float from the local at slot.
func FLOAD(iid, mid, slot int32) {
	Default().Var(event.FLOAD, iid, mid, slot)
}

// DLOAD loads a double from the local at slot.
func DLOAD(iid, mid, slot int32) {
	Default().Var(event.DLOAD, iid, mid, slot)
}

// ALOAD loads a reference from the local at slot.
func ALOAD(iid, mid, slot int32) {
	Default().Var(event.ALOAD, iid, mid, slot)
}

// ISTORE stores an int into the local at slot.
func ISTORE(iid, mid, slot int32) {
	Default().Var(event.ISTORE, iid, mid, slot)
}

// LSTORE stores a long into the local at slot.
func LSTORE(iid, mid, slot int32) {
	Default().Var(event.LSTORE, iid, mid, slot)
}

// FSTORE stores a float into the local at slot.
func FSTORE(iid, mid, slot int32) {
	Default().Var(event.FSTORE, iid, mid, slot)
}

// DSTORE stores a double into the local at slot.
func DSTORE(iid, mid, slot int32) {
	Default().Var(event.DSTORE, iid, mid, slot)
}

// ASTORE stores a reference into the local at slot.
func ASTORE(iid, mid, slot int32) {
	Default().Var(event.ASTORE, iid, mid, slot)
}

// RET returns from a subroutine to the address held in slot.
func RET(iid, mid, slot int32) {
	Default().Var(event.RET, iid, mid, slot)
}

// IINC increments the int local at slot by increment.
func IINC(iid, mid, slot, increment int32) {
	Default().Iinc(iid, mid, slot, increment)
}

// === Jumps and switches ===

// GOTO jumps unconditionally to label.
func GOTO(iid, mid, label int32) {
	Default().Jump(event.GOTO, iid, mid, label)
}

// JSR jumps to the subroutine at label.
func JSR(iid, mid, label int32) {
	Default().Jump(event.JSR, iid, mid, label)
}

// IFEQ jumps to label if the int is zero.
func IFEQ(iid, mid, label int32) {
	Default().Jump(event.IFEQ, iid, mid, label)
}

// IFNE jumps to label if the int is not zero.
func IFNE(iid, mid, label int32) {
	Default().Jump(event.IFNE, iid, mid, label)
}

// IFLT jumps to label if the int is negative.
func IFLT(iid, mid, label int32) {
	Default().Jump(event.IFLT, iid, mid, label)
}

// IFGE jumps to label if the int is not negative.
func IFGE(iid, mid, label int32) {
	Default().Jump(event.IFGE, iid, mid, label)
}

// IFGT jumps to label if the int is positive.
func IFGT(iid, mid, label int32) {
	Default().Jump(event.IFGT, iid, mid, label)
}

// IFLE jumps to label if the int is not positive.
func IFLE(iid, mid, label int32) {
	Default().Jump(event.IFLE, iid, mid, label)
}

// IF_ICMPEQ jumps to label if two ints are equal.
func IF_ICMPEQ(iid, mid, label int32) {
	Default().Jump(event.IF_ICMPEQ, iid, mid, label)
}

// IF_ICMPNE jumps to label if two ints differ.
func IF_ICMPNE(iid, mid, label int32) {
	Default().Jump(event.IF_ICMPNE, iid, mid, label)
}

// IF_ICMPLT jumps to label if the first int is less than the second.
func IF_ICMPLT(iid, mid, label int32) {
	Default().Jump(event.IF_ICMPLT, iid, mid, label)
}

// IF_ICMPGE jumps to label if the first int is greater than or equal to the second.
func IF_ICMPGE(iid, mid, label int32) {
	Default().Jump(event.IF_ICMPGE, iid, mid, label)
}

// IF_ICMPGT jumps to label if the first int is greater than the second.
func IF_ICMPGT(iid, mid, label int32) {
	Default().Jump(event.IF_ICMPGT, iid, mid, label)
}

// IF_ICMPLE jumps to label if the first int is less than or equal to the second.
func IF_ICMPLE(iid, mid, label int32) {
	Default().Jump(event.IF_ICMPLE, iid, mid, label)
}

// IF_ACMPEQ jumps to label if two references are equal.
func IF_ACMPEQ(iid, mid, label int32) {
	Default().Jump(event.IF_ACMPEQ, iid, mid, label)
}

// IF_ACMPNE jumps to label if two references differ.
func IF_ACMPNE(iid, mid, label int32) {
	Default().Jump(event.IF_ACMPNE, iid, mid, label)
}

// IFNULL jumps to label if the reference is null.
func IFNULL(iid, mid, label int32) {
	Default().Jump(event.IFNULL, iid, mid, label)
}

// IFNONNULL jumps to label if the reference is not null.
func IFNONNULL(iid, mid, label int32) {
	Default().Jump(event.IFNONNULL, iid, mid, label)
}

// TABLESWITCH dispatches over the keys lo..hi, with labels in key order.
func TABLESWITCH(iid, mid, lo, hi, dflt int32, labels []int32) {
	Default().TableSwitch(iid, mid, lo, hi, dflt, labels)
}

// LOOKUPSWITCH dispatches over sparse keys; keys[i] jumps to labels[i].
func LOOKUPSWITCH(iid, mid, dflt int32, keys, labels []int32) {
	Default().LookupSwitch(iid, mid, dflt, keys, labels)
}

// === Calls and fields ===

// INVOKEVIRTUAL calls an instance method with virtual dispatch.
func INVOKEVIRTUAL(iid, mid int32, owner, name, desc string) {
	Default().Invoke(event.INVOKEVIRTUAL, iid, mid, owner, name, desc)
}

// INVOKESPECIAL calls a constructor, private or super method.
func INVOKESPECIAL(iid, mid int32, owner, name, desc string) {
	Default().Invoke(event.INVOKESPECIAL, iid, mid, owner, name, desc)
}

// INVOKESTATIC calls a static method.
func INVOKESTATIC(iid, mid int32, owner, name, desc string) {
	Default().Invoke(event.INVOKESTATIC, iid, mid, owner, name, desc)
}

// INVOKEINTERFACE calls an interface method.
func INVOKEINTERFACE(iid, mid int32, owner, name, desc string) {
	Default().Invoke(event.INVOKEINTERFACE, iid, mid, owner, name, desc)
}

// GETSTATIC reads a static field.
func GETSTATIC(iid, mid, classIdx, fieldIdx int32, desc string) {
	Default().Field(event.GETSTATIC, iid, mid, classIdx, fieldIdx, desc)
}

// PUTSTATIC writes a static field.
func PUTSTATIC(iid, mid, classIdx, fieldIdx int32, desc string) {
	Default().Field(event.PUTSTATIC, iid, mid, classIdx, fieldIdx, desc)
}

// GETFIELD reads an instance field.
func GETFIELD(iid, mid, classIdx, fieldIdx int32, desc string) {
	Default().Field(event.GETFIELD, iid, mid, classIdx, fieldIdx, desc)
}

// PUTFIELD writes an instance field.
func PUTFIELD(iid, mid, classIdx, fieldIdx int32, desc string) {
	Default().Field(event.PUTFIELD, iid, mid, classIdx, fieldIdx, desc)
}

// === Heap and allocation ===

// HEAPLOAD1 traces a read of a named member of obj.
func HEAPLOAD1(iid, mid int32, obj any, field string) {
	Default().HeapLoad(iid, mid, obj, field)
}

// HEAPLOAD2 traces a read of element idx of obj.
func HEAPLOAD2(iid, mid int32, obj any, idx int32) {
	Default().HeapLoadIndex(iid, mid, obj, idx)
}

// NEW allocates an instance of typ.
func NEW(iid, mid int32, typ string) {
	Default().Alloc(event.NEW, iid, mid, typ, 0)
}

// NEWARRAY allocates a primitive array. The element type is not reported.
func NEWARRAY(iid, mid int32) {
	Default().Alloc(event.NEWARRAY, iid, mid, "", 1)
}

// ANEWARRAY allocates a one-dimensional array of references to typ.
func ANEWARRAY(iid, mid int32, typ string) {
	Default().Alloc(event.ANEWARRAY, iid, mid, typ, 1)
}

// MULTIANEWARRAY allocates a multi-dimensional array of type desc with dims dimensions.
func MULTIANEWARRAY(iid, mid int32, desc string, dims int32) {
	Default().Alloc(event.MULTIANEWARRAY, iid, mid, desc, dims)
}

// CHECKCAST checks that a reference can be cast to typ.
func CHECKCAST(iid, mid int32, typ string) {
	Default().TypeCheck(event.CHECKCAST, iid, mid, typ)
}

// INSTANCEOF tests whether a reference is an instance of typ.
func INSTANCEOF(iid, mid int32, typ string) {
	Default().TypeCheck(event.INSTANCEOF, iid, mid, typ)
}

// === Method boundaries ===

// METHOD_BEGIN marks entry into an instrumented method.
func METHOD_BEGIN(owner, name, desc string) {
	Default().MethodBegin(owner, name, desc)
}

// METHOD_THROW marks an instrumented method exiting by exception.
func METHOD_THROW() {
	Default().Signal(event.METHOD_THROW)
}

// INVOKEMETHOD_EXCEPTION marks a call site returning by exception.
func INVOKEMETHOD_EXCEPTION() {
	Default().Signal(event.INVOKEMETHOD_EXCEPTION)
}

// INVOKEMETHOD_END marks a call site returning normally.
func INVOKEMETHOD_END() {
	Default().Signal(event.INVOKEMETHOD_END)
}

// === Produced values ===

// GETVALUE_boolean reports a boolean result computed by the traced program.
func GETVALUE_boolean(value bool) {
	Default().Value(event.Bool(value))
}

// GETVALUE_byte reports a byte result computed by the traced program.
func GETVALUE_byte(value int8) {
	Default().Value(event.Byte(value))
}

// GETVALUE_char reports a char result computed by the traced program.
func GETVALUE_char(value uint16) {
	Default().Value(event.Char(value))
}

// GETVALUE_short reports a short result computed by the traced program.
func GETVALUE_short(value int16) {
	Default().Value(event.Short(value))
}

// GETVALUE_int reports an int result computed by the traced program.
func GETVALUE_int(value int32) {
	Default().Value(event.Int(value))
}

// GETVALUE_long reports a long result computed by the traced program.
func GETVALUE_long(value int64) {
	Default().Value(event.Long(value))
}

// GETVALUE_float reports a float result computed by the traced program.
func GETVALUE_float(value float32) {
	Default().Value(event.Float(value))
}

// GETVALUE_double reports a double result computed by the traced program.
func GETVALUE_double(value float64) {
	Default().Value(event.Double(value))
}

// GETVALUE_Object reports an Object result computed by the traced program.
func GETVALUE_Object(value any) {
	Default().Value(event.Object(value))
}

// GETVALUE_void marks a call that produced no value.
func GETVALUE_void() {
	Default().Value(event.Void())
}

// === Control signals ===

// SPECIAL forwards an engine-defined control code. Code -1 is reserved.
func SPECIAL(code int32) {
	Default().Special(code)
}

// MAKE_SYMBOLIC asks the engine to treat the next produced value as input.
func MAKE_SYMBOLIC() {
	Default().MakeSymbolic()
}
