package zilien

// blockSpan is one column block: the half-open column range [begin, end)
// owned by a non-empty cell of the series header row.
type blockSpan struct {
	label string
	begin int
	end   int
}

// splitBlocks partitions the series header row into column blocks over a
// data region width columns wide. A non-empty cell begins a block; empty
// cells continue the block to their left; each block ends where the next
// one begins, the last at width. An entirely empty row yields no blocks.
//
// The two header rows of a file may disagree in length, so spans clamp
// to [0, width]: a series row shorter than the column row leaves its
// last block absorbing the trailing data columns, and a label at or past
// width gets an empty span.
func splitBlocks(seriesHeaders []string, width int) []blockSpan {
	var blocks []blockSpan

	for i, header := range seriesHeaders {
		if header == "" {
			continue
		}

		begin := min(i, width)
		if len(blocks) > 0 {
			blocks[len(blocks)-1].end = begin
		}
		blocks = append(blocks, blockSpan{label: header, begin: begin})
	}

	if len(blocks) > 0 {
		blocks[len(blocks)-1].end = width
	}

	return blocks
}
