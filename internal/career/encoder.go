package career

import "sort"

// LabelEncoder maps role labels onto dense class indices in sorted label order.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// FitLabelEncoder collects the distinct labels.
func FitLabelEncoder(labels []string) *LabelEncoder {
	index := make(map[string]int)
	for _, l := range labels {
		index[l] = 0
	}

	classes := make([]string, 0, len(index))
	for l := range index {
		classes = append(classes, l)
	}
	sort.Strings(classes)

	for i, l := range classes {
		index[l] = i
	}

	return &LabelEncoder{classes: classes, index: index}
}

// Encode returns the class index of a label.
func (e *LabelEncoder) Encode(label string) (int, bool) {
	i, ok := e.index[label]
	return i, ok
}

// Decode returns the label of a class index.
func (e *LabelEncoder) Decode(i int) string {
	return e.classes[i]
}

// Len returns the number of classes.
func (e *LabelEncoder) Len() int {
	return len(e.classes)
}
