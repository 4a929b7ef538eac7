package ollama

import "noorai/interview/internal/llm"

// Register Ollama provider on package import
func init() {
	llm.RegisterProvider("ollama", func() (llm.Provider, error) {
		config, err := NewConfig()
		if err != nil {
			return nil, err
		}
		return NewClient(config)
	})
}
