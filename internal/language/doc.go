// Package language normalizes subtitle track language tags. Platforms label
// tracks with BCP 47 style tags ("zh-Hans", "en-US"); conversions to speech
// recognizer codes and display names are consolidated here.
package language
