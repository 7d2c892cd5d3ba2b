package cgen

import (
	"fmt"
	"strings"

	"sling/internal/ast"
	"sling/internal/sema"
)

// lowerExpr — одно тотальное правило на вид выражения; каждое правило
// даёт одно вложенное C++-выражение со значением SlValue, пригодное
// для любого контекста. Непокрытый вид — фатальная ошибка, не no-op.
func (e *Emitter) lowerExpr(id ast.ExprID) (string, error) {
	if !id.IsValid() {
		return "", malformedErr(sourceSpanNone, "missing expression node")
	}
	expr := e.builder.Exprs.Get(id)
	if expr == nil {
		return "", malformedErr(sourceSpanNone, "dangling expression id")
	}

	switch expr.Kind {
	case ast.ExprIdent:
		return e.identStorage(id)

	case ast.ExprLit:
		return e.lowerLiteral(id)

	case ast.ExprObject:
		return e.lowerObjectLiteral(id)

	case ast.ExprArray:
		return e.lowerArrayLiteral(id)

	case ast.ExprMember:
		slot, err := e.memberSlot(id)
		if err != nil {
			return "", err
		}
		return "(*" + slot + ")", nil

	case ast.ExprCall:
		data, _ := e.builder.Exprs.Call(id)
		callee, err := e.lowerExpr(data.Callee)
		if err != nil {
			return "", err
		}
		e.arities[len(data.Args)] = true
		var sb strings.Builder
		sb.WriteString(callHelperName(len(data.Args)))
		sb.WriteString("(")
		sb.WriteString(callee)
		for _, arg := range data.Args {
			lowered, err := e.lowerExpr(arg)
			if err != nil {
				return "", err
			}
			sb.WriteString(", ")
			sb.WriteString(lowered)
		}
		sb.WriteString(")")
		return sb.String(), nil

	case ast.ExprAssign:
		return e.lowerAssign(id)

	case ast.ExprBinary:
		return e.lowerBinary(id)

	case ast.ExprUnary:
		data, _ := e.builder.Exprs.Unary(id)
		operand, err := e.lowerExpr(data.Operand)
		if err != nil {
			return "", err
		}
		switch data.Op {
		case ast.UnaryNeg:
			return "sl_encode_number(-sl_get_number(" + operand + "))", nil
		case ast.UnaryNot:
			return "sl_encode_boolean(!sl_get_boolean(" + operand + "))", nil
		default:
			return "", unsupportedErr(expr.Span, "unary operator "+data.Op.String())
		}

	case ast.ExprUpdate:
		data, _ := e.builder.Exprs.Update(id)
		lvalue, err := e.lowerLValue(data.Operand)
		if err != nil {
			return "", err
		}
		ref := "(*sl_number_ref(&(" + lvalue + ")))"
		if data.Prefix {
			if data.Op == ast.UpdateInc {
				return "sl_encode_number(++" + ref + ")", nil
			}
			return "sl_encode_number(--" + ref + ")", nil
		}
		if data.Op == ast.UpdateInc {
			return "sl_encode_number(" + ref + "++)", nil
		}
		return "sl_encode_number(" + ref + "--)", nil

	case ast.ExprFunction:
		return e.lowerFunction(id)

	default:
		return "", unsupportedErr(expr.Span, "expression kind "+expr.Kind.String())
	}
}

// lowerObjectLiteral. Аргументы вызова C++ вычисляет в неопределённом
// порядке, поэтому литерал с двумя и более вычисляемыми операндами
// оборачивается в немедленно вызываемую лямбду: каждый операнд попадает
// во временную SlValue отдельным statement, слева направо.
func (e *Emitter) lowerObjectLiteral(id ast.ExprID) (string, error) {
	data, _ := e.builder.Exprs.Object(id)

	operands := 0
	for _, prop := range data.Props {
		operands++
		if prop.Computed.IsValid() {
			operands++
		}
	}

	if operands < 2 {
		// с одним операндом порядок ненаблюдаем, хватает вложенной формы
		acc := "sl_object_new()"
		for _, prop := range data.Props {
			value, err := e.lowerExpr(prop.Value)
			if err != nil {
				return "", err
			}
			key := e.builder.StringsInterner.MustLookup(prop.Key)
			acc = fmt.Sprintf("sl_object_put(%s, \"%s\", %s)", acc, escapeCString(key), value)
		}
		return "sl_encode_object(" + acc + ")", nil
	}

	var sb strings.Builder
	sb.WriteString("sl_encode_object([&] { ")
	acc := "sl_object_new()"
	tmp := 0
	for _, prop := range data.Props {
		if prop.Computed.IsValid() {
			key, err := e.lowerExpr(prop.Computed)
			if err != nil {
				return "", err
			}
			keyVar := fmt.Sprintf("sl_t%d", tmp)
			tmp++
			fmt.Fprintf(&sb, "SlValue %s = %s; ", keyVar, key)

			value, err := e.lowerExpr(prop.Value)
			if err != nil {
				return "", err
			}
			valVar := fmt.Sprintf("sl_t%d", tmp)
			tmp++
			fmt.Fprintf(&sb, "SlValue %s = %s; ", valVar, value)

			acc = fmt.Sprintf("sl_object_put_key(%s, %s, %s)", acc, keyVar, valVar)
			continue
		}

		value, err := e.lowerExpr(prop.Value)
		if err != nil {
			return "", err
		}
		valVar := fmt.Sprintf("sl_t%d", tmp)
		tmp++
		fmt.Fprintf(&sb, "SlValue %s = %s; ", valVar, value)

		key := e.builder.StringsInterner.MustLookup(prop.Key)
		acc = fmt.Sprintf("sl_object_put(%s, \"%s\", %s)", acc, escapeCString(key), valVar)
	}
	fmt.Fprintf(&sb, "return %s; }())", acc)
	return sb.String(), nil
}

// lowerArrayLiteral — та же схема секвенирования, что и у объектных
// литералов; sl_array_of остаётся единственным конструктором.
func (e *Emitter) lowerArrayLiteral(id ast.ExprID) (string, error) {
	data, _ := e.builder.Exprs.Array(id)

	if len(data.Elems) < 2 {
		var sb strings.Builder
		fmt.Fprintf(&sb, "sl_encode_array(sl_array_of(%d", len(data.Elems))
		for _, elem := range data.Elems {
			lowered, err := e.lowerExpr(elem)
			if err != nil {
				return "", err
			}
			sb.WriteString(", ")
			sb.WriteString(lowered)
		}
		sb.WriteString("))")
		return sb.String(), nil
	}

	var sb strings.Builder
	sb.WriteString("sl_encode_array([&] { ")
	for i, elem := range data.Elems {
		lowered, err := e.lowerExpr(elem)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "SlValue sl_t%d = %s; ", i, lowered)
	}
	fmt.Fprintf(&sb, "return sl_array_of(%d", len(data.Elems))
	for i := range data.Elems {
		fmt.Fprintf(&sb, ", sl_t%d", i)
	}
	sb.WriteString("); }())")
	return sb.String(), nil
}

func (e *Emitter) lowerLiteral(id ast.ExprID) (string, error) {
	data, _ := e.builder.Exprs.Literal(id)
	switch data.Kind {
	case ast.LitNumber:
		return "sl_encode_number(" + e.builder.StringsInterner.MustLookup(data.Value) + ")", nil
	case ast.LitBool:
		if data.Bool {
			return "sl_encode_boolean(true)", nil
		}
		return "sl_encode_boolean(false)", nil
	case ast.LitString:
		text := e.builder.StringsInterner.MustLookup(data.Value)
		return "sl_encode_string(\"" + escapeCString(text) + "\")", nil
	default:
		return "", unsupportedErr(e.builder.Exprs.Get(id).Span, "literal kind")
	}
}

// identStorage: глобал — доступ по имени в глобальном объекте; локал —
// путь к слоту через parent-цепочку. Идентификатор без резолюции —
// фатальная ошибка, никогда не дефолтится в глобальный лукап.
func (e *Emitter) identStorage(id ast.ExprID) (string, error) {
	expr := e.builder.Exprs.Get(id)
	data, _ := e.builder.Exprs.Ident(id)
	name := e.builder.StringsInterner.MustLookup(data.Name)

	declID, ok := e.sem.ResolutionOf[id]
	if !ok {
		return "", unresolvedErr(expr.Span, name)
	}
	decl := e.sem.Decls.Get(declID)
	if decl == nil {
		return "", malformedErr(expr.Span, "resolution points at a missing declaration")
	}

	switch decl.Kind {
	case sema.DeclGlobal, sema.DeclImplicitGlobal:
		return "(*sl_global_slot(\"" + escapeCString(name) + "\"))", nil
	default:
		return e.slotPath(e.current, decl, name)
	}
}

// memberSlot: именованный доступ разворачивает контейнер до объекта,
// вычисляемый оставляет контейнер теговым — рантайм сам различает
// объект и массив по ключу.
func (e *Emitter) memberSlot(id ast.ExprID) (string, error) {
	data, _ := e.builder.Exprs.Member(id)
	object, err := e.lowerExpr(data.Object)
	if err != nil {
		return "", err
	}
	if data.IsComputed() {
		key, err := e.lowerExpr(data.Key)
		if err != nil {
			return "", err
		}
		return "sl_index_slot(" + object + ", " + key + ")", nil
	}
	name := e.builder.StringsInterner.MustLookup(data.Name)
	return "sl_object_slot(sl_get_object(" + object + "), \"" + escapeCString(name) + "\")", nil
}

// lowerLValue даёт C++-lvalue для цели присваивания.
func (e *Emitter) lowerLValue(id ast.ExprID) (string, error) {
	expr := e.builder.Exprs.Get(id)
	if expr == nil {
		return "", malformedErr(sourceSpanNone, "dangling lvalue id")
	}
	switch expr.Kind {
	case ast.ExprIdent:
		return e.identStorage(id)
	case ast.ExprMember:
		slot, err := e.memberSlot(id)
		if err != nil {
			return "", err
		}
		return "(*" + slot + ")", nil
	default:
		return "", unsupportedErr(expr.Span, "assignment target "+expr.Kind.String())
	}
}

func (e *Emitter) lowerAssign(id ast.ExprID) (string, error) {
	expr := e.builder.Exprs.Get(id)
	data, _ := e.builder.Exprs.Assign(id)

	lvalue, err := e.lowerLValue(data.Target)
	if err != nil {
		return "", err
	}
	value, err := e.lowerExpr(data.Value)
	if err != nil {
		return "", err
	}

	if data.Op == ast.AssignPlain {
		return "(" + lvalue + " = " + value + ")", nil
	}

	// составное присваивание: обе стороны через числовые аксессоры;
	// мутация идёт in-place по ссылке на Number внутри lvalue
	var op string
	switch data.Op {
	case ast.AssignAdd:
		op = "+="
	case ast.AssignSub:
		op = "-="
	case ast.AssignMul:
		op = "*="
	case ast.AssignDiv:
		op = "/="
	default:
		return "", unsupportedErr(expr.Span, "compound assignment "+data.Op.String())
	}
	return "sl_encode_number(*sl_number_ref(&(" + lvalue + ")) " + op + " sl_get_number(" + value + "))", nil
}

func (e *Emitter) lowerBinary(id ast.ExprID) (string, error) {
	expr := e.builder.Exprs.Get(id)
	data, _ := e.builder.Exprs.Binary(id)

	left, err := e.lowerExpr(data.Left)
	if err != nil {
		return "", err
	}
	right, err := e.lowerExpr(data.Right)
	if err != nil {
		return "", err
	}
	ln := "sl_get_number(" + left + ")"
	rn := "sl_get_number(" + right + ")"

	switch data.Op {
	case ast.BinAdd, ast.BinSub, ast.BinMul, ast.BinDiv:
		return "sl_encode_number(" + ln + " " + data.Op.String() + " " + rn + ")", nil

	case ast.BinMod, ast.BinBitAnd, ast.BinBitOr, ast.BinBitXor, ast.BinShl, ast.BinShr:
		// целочисленные операторы C++ не определены на double
		return "sl_encode_number((double)((long long)" + ln + " " + data.Op.String() + " (long long)" + rn + "))", nil

	case ast.BinLt, ast.BinLtEq, ast.BinGt, ast.BinGtEq:
		return "sl_encode_boolean(" + ln + " " + data.Op.String() + " " + rn + ")", nil

	case ast.BinEq, ast.BinStrictEq:
		return "sl_encode_boolean(" + ln + " == " + rn + ")", nil

	case ast.BinNotEq, ast.BinStrictNotEq:
		return "sl_encode_boolean(" + ln + " != " + rn + ")", nil

	default:
		return "", unsupportedErr(expr.Span, "binary operator "+data.Op.String())
	}
}
