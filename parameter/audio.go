package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines output latency
	AudioBufferDuration = 100 * time.Millisecond

	AudioDefaultVolume = 0.6
)

// Hit Bell
const (
	HitSoundDuration           = 600 * time.Millisecond
	HitSoundAttack             = 5 * time.Millisecond
	HitSoundFundamentalRelease = 550 * time.Millisecond
	HitSoundOvertoneRelease    = 200 * time.Millisecond
	HitSoundFundamental        = 880.0 // Hz, A5
)

// Near-Miss Chirp
const (
	NearMissNote1Duration = 80 * time.Millisecond
	NearMissNote2Duration = 160 * time.Millisecond
	NearMissAttack        = 5 * time.Millisecond
	NearMissNote1Release  = 40 * time.Millisecond
	NearMissNote2Release  = 120 * time.Millisecond
	NearMissNote1Freq     = 659.25 // Hz, E5
	NearMissNote2Freq     = 987.77 // Hz, B5
)

// Miss Buzz
const (
	MissSoundDuration = 150 * time.Millisecond
	MissSoundAttack   = 5 * time.Millisecond
	MissSoundRelease  = 40 * time.Millisecond
	MissSoundFreq     = 100.0 // Hz
)
