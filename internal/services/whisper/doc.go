// Package whisper implements the media.Transcriber contract by shelling out
// to the whisper-ctranslate2 command line tool via uvx.
package whisper
