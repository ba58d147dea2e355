package card

import (
	"fmt"
	"strings"
)

// Card 牌枚举
//
// 编码规则:
// - 高4位: 花色 (0:Spade, 1:Heart, 2:Club, 3:Diamond)
// - 低4位: 点数 (1:A, 2..9, 10:T, 11:J, 12:Q, 13:K)
type Card byte

func (c Card) String() string {
	if c == CardInvalid {
		return "Invalid"
	}
	if c == CardRear {
		return "Rear"
	}

	suit := Suit(c >> 4)
	rank := c & 0x0F

	rankStr := ""
	switch rank {
	case 1:
		rankStr = "A"
	case 10:
		rankStr = "T"
	case 11:
		rankStr = "J"
	case 12:
		rankStr = "Q"
	case 13:
		rankStr = "K"
	default:
		rankStr = fmt.Sprintf("%d", rank)
	}

	return fmt.Sprintf("%s%s", suit, rankStr)
}

// Code 返回紧凑编码 (如 "As", "Td"), 与 Parse 互逆
func (c Card) Code() string {
	if c == CardInvalid || c == CardRear {
		return "??"
	}
	rank := c & 0x0F
	rankStr := ""
	switch rank {
	case 1:
		rankStr = "A"
	case 10:
		rankStr = "T"
	case 11:
		rankStr = "J"
	case 12:
		rankStr = "Q"
	case 13:
		rankStr = "K"
	default:
		rankStr = fmt.Sprintf("%d", rank)
	}
	suitStr := [...]string{"s", "h", "c", "d"}[c>>4]
	return rankStr + suitStr
}

// Rank 获取牌面值 1-13 (A=1, K=13)
func (c Card) Rank() byte {
	if c == CardInvalid || c == CardRear {
		return 0
	}
	return byte(c & 0x0F)
}

// Suit 花色 (0:Spades, 1:Hearts, 2:Clubs, 3:Diamonds)
func (c Card) Suit() Suit {
	return Suit(c >> 4)
}

func (c Card) IsAce() bool {
	return c.Rank() == 1
}

// HighValue 返回用于比较大小的点数:
// - A 视为 14
// - 其它为原始点数
func (c Card) HighValue() int {
	r := int(c & 0x0F)
	if r == 1 {
		return 14
	}
	return r
}

// Parse 将字符串 (如 "As", "Td", "10h") 转换为 Card 常量
func Parse(cardStr string) (Card, error) {
	if len(cardStr) < 2 {
		return 0, fmt.Errorf("invalid card string: %s", cardStr)
	}

	suitChar := cardStr[len(cardStr)-1]
	var suitBase Card

	switch suitChar {
	case 's', 'S':
		suitBase = 0x00
	case 'h', 'H':
		suitBase = 0x10
	case 'c', 'C':
		suitBase = 0x20
	case 'd', 'D':
		suitBase = 0x30
	default:
		return 0, fmt.Errorf("invalid suit: %c", suitChar)
	}

	rankStr := cardStr[:len(cardStr)-1]
	var rankVal Card

	switch strings.ToUpper(rankStr) {
	case "A":
		rankVal = 0x01
	case "2", "3", "4", "5", "6", "7", "8", "9":
		rankVal = Card(rankStr[0] - '0')
	case "T", "10":
		rankVal = 0x0A
	case "J":
		rankVal = 0x0B
	case "Q":
		rankVal = 0x0C
	case "K":
		rankVal = 0x0D
	default:
		return 0, fmt.Errorf("invalid rank: %s", rankStr)
	}

	return suitBase + rankVal, nil
}

// MustParse is Parse for fixtures; panics on bad input.
func MustParse(cardStr string) Card {
	c, err := Parse(cardStr)
	if err != nil {
		panic(err)
	}
	return c
}
