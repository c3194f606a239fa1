// Command vidscribe turns online videos into text transcripts, preferring
// platform subtitles and falling back to speech recognition.
package main
