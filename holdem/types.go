package holdem

// Stage 游戏阶段 (0=pre-flop .. 3=river)
type Stage byte

const (
	StagePreflop Stage = 0
	StageFlop    Stage = 1
	StageTurn    Stage = 2
	StageRiver   Stage = 3
)

var StageDictionary = map[Stage]string{
	StagePreflop: "pre-flop",
	StageFlop:    "flop",
	StageTurn:    "turn",
	StageRiver:   "river",
}

func (s Stage) String() string {
	if n, ok := StageDictionary[s]; ok {
		return n
	}
	return "unknown"
}

// EventKind 下一事件类型：Advance 将执行的事件
type EventKind byte

const (
	EventPlayerTurn   EventKind = 1 // 轮到玩家操作
	EventStageAdvance EventKind = 2 // 本街结束，进入下一街
	EventShowdown     EventKind = 3 // 摊牌
	EventRoundEnd     EventKind = 4 // 本局已结束
)

var EventKindDictionary = map[EventKind]string{
	EventPlayerTurn:   "player_turn",
	EventStageAdvance: "stage_advance",
	EventShowdown:     "showdown",
	EventRoundEnd:     "round_end",
}

func (k EventKind) String() string {
	if n, ok := EventKindDictionary[k]; ok {
		return n
	}
	return "unknown"
}

// ActionKind 动作类型：1-FOLD 2-CHECK 3-BET
type ActionKind byte

const (
	ActionFold  ActionKind = 1
	ActionCheck ActionKind = 2
	ActionBet   ActionKind = 3
)

var ActionKindDictionary = map[ActionKind]string{
	ActionFold:  "FOLD",
	ActionCheck: "CHECK",
	ActionBet:   "BET",
}

func (k ActionKind) String() string {
	if n, ok := ActionKindDictionary[k]; ok {
		return n
	}
	return "NONE"
}

// 手牌常量定义
const (
	HandHighCard      byte = iota + 1 // 高牌
	HandOnePair                       // 一对
	HandTwoPair                       // 两对
	HandThreeOfKind                   // 三条
	HandStraight                      // 顺子
	HandFlush                         // 同花
	HandFullHouse                     // 葫芦
	HandFourOfKind                    // 四条
	HandStraightFlush                 // 同花顺
	HandRoyalFlush                    // 皇家同花顺
)

var HandTypeDictionary = map[byte]string{
	HandHighCard:      "High Card",
	HandOnePair:       "One Pair",
	HandTwoPair:       "Two Pair",
	HandThreeOfKind:   "Three of a Kind",
	HandStraight:      "Straight",
	HandFlush:         "Flush",
	HandFullHouse:     "Full House",
	HandFourOfKind:    "Four of a Kind",
	HandStraightFlush: "Straight Flush",
	HandRoyalFlush:    "Royal Flush",
}

// Behavior selects which decision policy a seat gets.
type Behavior string

const (
	BehaviorStandard     Behavior = "Standard"
	BehaviorRisky        Behavior = "Risky"
	BehaviorConservative Behavior = "Conservative"
	BehaviorInteractive  Behavior = "Interactive"
)
