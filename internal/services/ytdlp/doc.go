// Package ytdlp implements the media.Fetcher contract by shelling out to the
// yt-dlp command line tool.
package ytdlp
