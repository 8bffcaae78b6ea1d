package iocli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Проверяем что NewStdio возвращает валидный объект
func TestNewStdio(t *testing.T) {
	stdio := NewStdio()
	assert.NotNil(t, stdio)
}

func TestPrintlnAndPrintf(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader(""), &out)

	s.Println("hello", "world")
	s.Printf("test %d %s", 1, "abc")
	_, err := s.Write([]byte("!"))
	require.NoError(t, err)

	assert.Equal(t, "hello world\ntest 1 abc!", out.String())
	// Буфер не терминал
	assert.Equal(t, 0, s.Width())
}

// Тест ReadInput: читаем из буфера вместо os.Stdin
func TestReadInput(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader("user input\nsecond\nlast"), &out)

	result, err := s.ReadInput("Prompt: ")
	require.NoError(t, err)
	assert.Equal(t, "user input", result)
	assert.Equal(t, "Prompt: ", out.String())

	// Повторное чтение продолжает тот же поток
	result, err = s.ReadInput("")
	require.NoError(t, err)
	assert.Equal(t, "second", result)

	// Последняя строка без перевода строки
	result, err = s.ReadInput("")
	require.NoError(t, err)
	assert.Equal(t, "last", result)

	_, err = s.ReadInput("")
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadPassword_NotTerminal(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader("secret\n"), &out)

	pw, err := s.ReadPassword("Secret: ")
	require.NoError(t, err)
	assert.Equal(t, "secret", pw)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"short yes", "y\n", true},
		{"long yes any case", " Yes \n", true},
		{"no", "n\n", false},
		{"empty line", "\n", false},
		{"end of input", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			s := New(strings.NewReader(tt.input), &out)
			assert.Equal(t, tt.want, Confirm(s, "Delete?"))
			assert.Equal(t, "Delete? [y/N]: ", out.String())
		})
	}
}
