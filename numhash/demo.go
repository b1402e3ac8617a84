package numhash

// Example is a labelled value used to demonstrate truncation.
type Example struct {
	Group string
	Label string
	Value *Value
}

// DemoExamples returns pairs of values that hash alike within each group.
func DemoExamples() []Example {
	nested := func() *Value { return Seq(Int(1), Int(2), Seq(Int(3), Int(4))) }
	return []Example{
		{"string", `text "test string"`, Text("test string")},
		{"string", `bytes "test string"`, Bytes([]byte("test string"))},
		{"float", "1.0", Float(1.0)},
		{"float", "1.0 + 1e-13", Float(1.0 + 1e-13)},
		{"map", "{a: 12.0, b: [1, 2, [3, 4]]}", Map(Field("a", Float(12.0)), Field("b", nested()))},
		{"map", "{a: 12.0 + 1e-14, b: [1, 2, [3, 4]]}", Map(Field("a", Float(12.0+1e-14)), Field("b", nested()))},
		{"complex array", "[1j]", ArrayValue(Complex128s(1i))},
		{"complex array", "[1j + 1e-13j]", ArrayValue(Complex128s(1i + 1e-13i))},
	}
}
