package game

// Asset names the controller looks up in a loaded Bundle.
const (
	ImageHappyMole  = "happyMole"
	ImageAngryMole  = "angryMole"
	ImageBackground = "backgroundImage"

	SoundWhack           = "whackSound"
	SoundScore           = "scoreSound"
	SoundExtra           = "extraSound"
	SoundAttack          = "attackSound"
	SoundGameOver        = "gameOverSound"
	SoundBackgroundMusic = "backgroundMusic"

	FontGame = "gameFont"

	StageMain = "stage"
)
