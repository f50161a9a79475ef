package openai_tools

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sashabaranov/go-openai"
)

const (
	tokensPerMessage = 4
	tokensPerReply   = 3

	fallbackEncoding = "cl100k_base"
)

// CountToken estimates how many tokens a chat completion request spends on
// the given messages. Unknown models fall back to the cl100k_base encoding.
func CountToken(messages []openai.ChatCompletionMessage, model string) (int, error) {
	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		tkm, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return 0, fmt.Errorf("failed to get encoding: %w", err)
		}
	}

	tokens := tokensPerReply
	for _, message := range messages {
		tokens += tokensPerMessage
		tokens += len(tkm.Encode(message.Role, nil, nil))
		tokens += len(tkm.Encode(message.Content, nil, nil))
	}
	return tokens, nil
}
