// Package testsupport holds fakes and fixtures shared by package tests:
// a scripted executor that stands in for ffmpeg/ffprobe and a WAV writer.
package testsupport
