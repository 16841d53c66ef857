// Package language normalizes the language hint passed to the speech
// recognizer and renders detected language codes for humans.
package language
