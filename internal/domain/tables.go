package domain

var Tables = []interface{}{
	&Product{},
	&ShelfEvent{},
}
