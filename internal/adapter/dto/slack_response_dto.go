package dto

import "github.com/slack-go/slack"

// BlocksResponseDTO is the slash-command reply payload: an ordered list of
// Block Kit blocks. Order is significant; it is the user-visible message.
type BlocksResponseDTO struct {
	Blocks []slack.Block `json:"blocks"`
}

// NewBlocksResponse wraps blocks in the response envelope Slack expects.
func NewBlocksResponse(blocks []slack.Block) *BlocksResponseDTO {
	return &BlocksResponseDTO{Blocks: blocks}
}
