package pyast

import (
	"context"
	"testing"
)

func parseSrc(t *testing.T, src string) *File {
	t.Helper()
	f, err := Parse(context.Background(), []byte(src), "test.py")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return f
}

func TestLowerSimpleCall(t *testing.T) {
	f := parseSrc(t, `c = boto3.client("s3")`)
	if len(f.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(f.Calls))
	}
	call := f.Calls[0]
	attr, ok := call.Func.(*Attribute)
	if !ok {
		t.Fatalf("expected attribute callee, got %T", call.Func)
	}
	if attr.Attr != "client" {
		t.Fatalf("expected attr client, got %q", attr.Attr)
	}
	base, ok := attr.Value.(*Ident)
	if !ok || base.Name != "boto3" {
		t.Fatalf("expected ident base boto3, got %#v", attr.Value)
	}
	if len(call.Args) != 1 {
		t.Fatalf("expected 1 positional arg, got %d", len(call.Args))
	}
	lit, ok := call.Args[0].(*StringLit)
	if !ok || lit.Value != "s3" {
		t.Fatalf("expected string literal s3, got %#v", call.Args[0])
	}
}

func TestLowerKeywordArguments(t *testing.T) {
	f := parseSrc(t, `c = boto3.client("s3", region_name="us-east-1", endpoint_url=url)`)
	if len(f.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(f.Calls))
	}
	kws := f.Calls[0].Keywords
	if len(kws) != 2 {
		t.Fatalf("expected 2 keywords, got %d", len(kws))
	}
	if kws[0].Name != "region_name" {
		t.Fatalf("expected region_name first, got %q", kws[0].Name)
	}
	lit, ok := kws[0].Value.(*StringLit)
	if !ok || lit.Value != "us-east-1" {
		t.Fatalf("unexpected region value: %#v", kws[0].Value)
	}
	if kws[1].Name != "endpoint_url" {
		t.Fatalf("expected endpoint_url second, got %q", kws[1].Name)
	}
	if _, ok := kws[1].Value.(*Ident); !ok {
		t.Fatalf("expected ident value for endpoint_url, got %#v", kws[1].Value)
	}
}

func TestLowerNestedAttributeChain(t *testing.T) {
	f := parseSrc(t, `r = session.boto_session.resource("s3")`)
	if len(f.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(f.Calls))
	}
	outer, ok := f.Calls[0].Func.(*Attribute)
	if !ok || outer.Attr != "resource" {
		t.Fatalf("unexpected callee: %#v", f.Calls[0].Func)
	}
	inner, ok := outer.Value.(*Attribute)
	if !ok || inner.Attr != "boto_session" {
		t.Fatalf("unexpected inner attribute: %#v", outer.Value)
	}
	base, ok := inner.Value.(*Ident)
	if !ok || base.Name != "session" {
		t.Fatalf("unexpected chain base: %#v", inner.Value)
	}
}

func TestLowerNestedCalls(t *testing.T) {
	// Both the outer and the inner call must be collected.
	f := parseSrc(t, `x = wrap(boto3.client("s3"))`)
	if len(f.Calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(f.Calls))
	}
}

func TestStringLiteralVariants(t *testing.T) {
	f := parseSrc(t, `a = f('s3')
b = f("s3")
c = f("""s3""")
d = f(r"s3")
`)
	if len(f.Calls) != 4 {
		t.Fatalf("expected 4 calls, got %d", len(f.Calls))
	}
	for i, call := range f.Calls {
		lit, ok := call.Args[0].(*StringLit)
		if !ok || lit.Value != "s3" {
			t.Fatalf("call %d: expected string literal s3, got %#v", i, call.Args[0])
		}
	}
}

func TestNoneAndEmptyStringAreFalsy(t *testing.T) {
	f := parseSrc(t, `a = f(x=None, y="", z="v", w=0)`)
	kws := f.Calls[0].Keywords
	if len(kws) != 4 {
		t.Fatalf("expected 4 keywords, got %d", len(kws))
	}
	if IsTruthy(kws[0].Value) {
		t.Fatalf("None should be falsy")
	}
	if IsTruthy(kws[1].Value) {
		t.Fatalf("empty string should be falsy")
	}
	if !IsTruthy(kws[2].Value) {
		t.Fatalf("non-empty string should be truthy")
	}
	// Numeric zero is not modeled; presence counts.
	if !IsTruthy(kws[3].Value) {
		t.Fatalf("integer literal should count as present")
	}
	if IsTruthy(nil) {
		t.Fatalf("nil value should be falsy")
	}
}

func TestSplatArgumentsDoNotPanic(t *testing.T) {
	f := parseSrc(t, `c = boto3.client(*args, **kwargs)`)
	if len(f.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(f.Calls))
	}
	// **kwargs has no statically known name and is dropped; *args is
	// positional but not a string literal.
	for _, kw := range f.Calls[0].Keywords {
		if kw.Name == "" {
			t.Fatalf("unexpected unnamed keyword: %#v", kw)
		}
	}
}

func TestSyntaxErrorStillYieldsCalls(t *testing.T) {
	f := parseSrc(t, `def broken(:
    pass

c = boto3.client("s3")
`)
	found := false
	for _, call := range f.Calls {
		if attr, ok := call.Func.(*Attribute); ok && attr.Attr == "client" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the well-formed call to survive a syntax error elsewhere")
	}
}

func TestPositions(t *testing.T) {
	f := parseSrc(t, "\nc = boto3.client(\"s3\")\n")
	if len(f.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(f.Calls))
	}
	pos := f.Calls[0].Position
	if pos.Filename != "test.py" || pos.Line != 2 {
		t.Fatalf("unexpected position: %+v", pos)
	}
}
