package writegood

var irregularParticiples = []string{
	"awoken", "been", "born", "beat", "become", "begun", "bent", "beset", "bet", "bid",
	"bidden", "bound", "bitten", "bled", "blown", "broken", "bred", "brought", "broadcast",
	"built", "burnt", "burst", "bought", "cast", "caught", "chosen", "clung", "come", "cost",
	"crept", "cut", "dealt", "dug", "dived", "done", "drawn", "dreamt", "driven", "drunk",
	"eaten", "fallen", "fed", "felt", "fought", "found", "fit", "fled", "flung", "flown",
	"forbidden", "forecast", "foregone", "foreseen", "foretold", "forgotten", "forgiven",
	"forsaken", "frozen", "gotten", "given", "gone", "ground", "grown", "hung", "heard",
	"hidden", "hit", "held", "hurt", "kept", "knelt", "knit", "known", "laid", "led", "leapt",
	"learnt", "left", "lent", "let", "lain", "lit", "lost", "made", "meant", "met",
	"mistaken", "mown", "overcome", "overdone", "overtaken", "overthrown", "paid", "pled",
	"proven", "put", "quit", "read", "rid", "ridden", "rung", "risen", "run", "sawn", "said",
	"seen", "sought", "sold", "sent", "set", "sewn", "shaken", "shaven", "shorn", "shed",
	"shone", "shod", "shot", "shown", "shrunk", "shut", "sung", "sunk", "sat", "slept",
	"slain", "slid", "slung", "slit", "smitten", "sown", "spoken", "sped", "spent", "spilt",
	"spun", "spit", "split", "spread", "sprung", "stood", "stolen", "stuck", "stung",
	"stunk", "stridden", "struck", "strung", "striven", "sworn", "swept", "swollen", "swum",
	"swung", "taken", "taught", "torn", "told", "thought", "thrown", "thrust", "trodden",
	"understood", "upheld", "upset", "woken", "worn", "woven", "wed", "wept", "wound", "won",
	"withheld", "withstood", "wrung", "written",
}

var weaselWords = []string{
	"many", "various", "very", "fairly", "several", "extremely", "exceedingly", "quite",
	"remarkably", "few", "surprisingly", "mostly", "largely", "huge", "tiny",
	"are a number", "is a number", "excellent", "interestingly", "significantly",
	"substantially", "clearly", "vast", "relatively", "completely", "literally",
	"not rocket science", "outside the box",
}

var adverbs = []string{
	"absolutely", "accidentally", "additionally", "allegedly", "alternatively", "angrily",
	"anxiously", "approximately", "awkwardly", "badly", "barely", "beautifully", "blindly",
	"boldly", "bravely", "brightly", "briskly", "busily", "calmly", "carefully",
	"carelessly", "cautiously", "cheerfully", "clearly", "closely", "coldly", "completely",
	"consequently", "correctly", "courageously", "cruelly", "currently", "daringly",
	"definitely", "deliberately", "doubtfully", "dumbly", "eagerly", "easily", "elegantly",
	"enormously", "enthusiastically", "equally", "especially", "eventually", "exactly",
	"exceedingly", "exclusively", "extremely", "fairly", "faithfully", "fatally",
	"fiercely", "finally", "fondly", "foolishly", "fortunately", "frankly", "frantically",
	"generously", "gently", "gladly", "gracefully", "greedily", "happily", "hardly",
	"hastily", "healthily", "heartily", "helpfully", "honestly", "hungrily", "hurriedly",
	"immediately", "impatiently", "inadequately", "ingeniously", "innocently",
	"inquisitively", "interestingly", "irritably", "joyously", "justly", "kindly",
	"largely", "lazily", "literally", "loosely", "loudly", "luckily", "madly", "mentally",
	"mildly", "mortally", "mostly", "mysteriously", "neatly", "nervously", "noisily",
	"normally", "obediently", "occasionally", "openly", "painfully", "particularly",
	"patiently", "perfectly", "politely", "poorly", "powerfully", "presumably",
	"previously", "promptly", "punctually", "quickly", "quietly", "rapidly", "rarely",
	"really", "recently", "recklessly", "regularly", "relatively", "reluctantly",
	"remarkably", "repeatedly", "rightfully", "roughly", "rudely", "sadly", "safely",
	"selfishly", "sensibly", "seriously", "sharply", "shortly", "shyly", "significantly",
	"silently", "simply", "sleepily", "slowly", "smartly", "smoothly", "softly",
	"solemnly", "speedily", "stealthily", "sternly", "stupidly", "substantially",
	"successfully", "suddenly", "surprisingly", "suspiciously", "swiftly", "tenderly",
	"tensely", "thoughtfully", "tightly", "truthfully", "unexpectedly", "unfortunately",
	"usually", "victoriously", "violently", "vivaciously", "warmly", "weakly", "wearily",
	"wildly", "wisely",
}

var wordyPhrases = []string{
	"a number of", "abundance", "accede to", "accelerate", "accentuate", "accompany",
	"accomplish", "accorded", "accrue", "acquiesce", "acquire", "additional", "adjacent to",
	"adjustment", "admissible", "advantageous", "adversely impact", "advise",
	"aforementioned", "aggregate", "all of", "all things considered", "alleviate",
	"allocate", "along the lines of", "already existing", "ameliorate", "anticipate",
	"apparent", "appreciable", "as a matter of fact", "as a means of", "as of yet",
	"as to", "as yet", "ascertain", "assistance", "at the present time", "at this time",
	"attain", "attributable to", "authorize", "because of the fact that", "belated",
	"benefit from", "bestow", "by means of", "by virtue of", "cease", "close proximity",
	"commence", "comply with", "concerning", "consolidate", "constitutes", "demonstrate",
	"depart", "designate", "discontinue", "due to the fact that", "each and every",
	"economical", "eliminate", "elucidate", "employ", "endeavor", "enumerate", "equitable",
	"equivalent", "evaluate", "evidenced", "expedite", "expend", "expiration", "facilitate",
	"factual evidence", "feasible", "finalize", "first and foremost", "for the purpose of",
	"forfeit", "formulate", "have a tendency to", "honest truth", "however",
	"if and when", "impacted", "implement", "in a manner of speaking", "in a timely manner",
	"in a very real sense", "in accordance with", "in addition", "in all likelihood",
	"in an effort to", "in between", "in excess of", "in lieu of",
	"in light of the fact that", "in many cases", "in my opinion", "in order to",
	"in regard to", "in some instances", "in terms of", "in the near future",
	"in the process of", "inception", "incumbent upon", "indicate", "indication",
	"initiate", "is applicable to", "is authorized to", "is responsible for",
	"it is essential", "it seems that", "magnitude", "maximum", "methodology", "minimize",
	"minimum", "modify", "monitor", "multiple", "necessitate", "nevertheless",
	"not certain", "not many", "not often", "not unless", "not unlike", "notwithstanding",
	"null and void", "numerous", "objective", "obligate", "obtain", "on the contrary",
	"on the other hand", "one particular", "optimum", "overall", "owing to the fact that",
	"participate", "particulars", "pass away", "pertaining to", "point in time", "portion",
	"possess", "preclude", "prior to", "prioritize", "procure", "proficiency",
	"provided that", "purchase", "put simply", "readily apparent", "refer back",
	"regarding", "relocate", "remainder", "remuneration", "requirement", "reside",
	"residence", "retain", "satisfy", "shall", "should you wish", "similar to", "solicit",
	"span across", "strategize", "subsequent", "substantial", "successfully complete",
	"sufficient", "terminate", "the month of", "therefore", "time period",
	"took advantage of", "transmit", "transpire", "type of", "until such time as",
	"utilization", "utilize", "validate", "various different", "whether or not",
	"with respect to", "with the exception of", "witnessed",
}

var cliches = []string{
	"a chip off the old block", "a clean slate", "a dark and stormy night", "a far cry",
	"a fine kettle of fish", "a loose cannon", "a penny saved is a penny earned",
	"a tough row to hoe", "a word to the wise", "ace in the hole", "acid test",
	"add insult to injury", "against all odds", "air your dirty laundry",
	"all in a day's work", "all thumbs", "all your eggs in one basket",
	"all's fair in love and war", "all's well that ends well", "almighty dollar",
	"an axe to grind", "armed to the teeth", "as luck would have it", "as old as time",
	"as the crow flies", "at loose ends", "avoid like the plague", "back against the wall",
	"back in the saddle", "back to square one", "back to the drawing board",
	"ballpark figure", "baptism by fire", "barking up the wrong tree", "beat a dead horse",
	"beat around the bush", "beggars can't be choosers", "behind the eight ball",
	"bend over backwards", "benefit of the doubt", "bent out of shape",
	"best thing since sliced bread", "bet your bottom dollar", "better late than never",
	"better safe than sorry", "between a rock and a hard place", "beyond the pale",
	"bide your time", "big fish in a small pond", "bird's eye view", "bite the bullet",
	"bite the dust", "blast from the past", "blessing in disguise", "blind as a bat",
	"blood is thicker than water", "blow off steam", "bolt from the blue",
	"bone to pick", "bored to tears", "bottomless pit", "bright and early",
	"brings home the bacon", "broken record", "bull in a china shop",
	"burn the midnight oil", "burning the candle at both ends", "burst your bubble",
	"bury the hatchet", "busy as a bee", "by hook or by crook", "call a spade a spade",
	"calm before the storm", "can of worms", "can't hold a candle to",
	"cat got your tongue", "caught red-handed", "chomping at the bit", "clear as a bell",
	"clear as mud", "cold shoulder", "come hell or high water", "cool as a cucumber",
	"count your blessings", "crack of dawn", "crash course", "creature comforts",
	"cross that bridge when you come to it", "cry over spilt milk", "crystal clear",
	"curiosity killed the cat", "cut and dried", "cut through the red tape",
	"cut to the chase", "dead as a doornail", "devil is in the details", "dime a dozen",
	"divide and conquer", "dog and pony show", "dog eat dog", "don't rock the boat",
	"down and out", "down to earth", "draw the line", "dressed to the nines",
	"easier said than done", "easy as pie", "eleventh hour", "even the playing field",
	"every dog has its day", "eye for an eye", "face the music", "fair weather friend",
	"fall by the wayside", "few and far between", "fish out of water", "fit as a fiddle",
	"flash in the pan", "flat as a pancake", "for all intents and purposes",
	"for what it's worth", "force to be reckoned with", "forgive and forget",
	"full steam ahead", "get the ball rolling", "get to the bottom of",
	"get your feet wet", "go against the grain", "go the extra mile", "go with the flow",
	"goes without saying", "good as gold", "grist for the mill", "hand to mouth",
	"happy as a clam", "head over heels", "hit the nail on the head", "hold your horses",
	"icing on the cake", "in a nutshell", "in hot water", "in the nick of time",
	"it goes without saying", "ivory tower", "jack of all trades", "jump on the bandwagon",
	"jump the gun", "jump to conclusions", "keep your fingers crossed", "kick the bucket",
	"kill two birds with one stone", "knock on wood", "know the ropes", "labor of love",
	"last but not least", "last-ditch effort", "leaps and bounds",
	"let sleeping dogs lie", "let the cat out of the bag", "light at the end of the tunnel",
	"like clockwork", "lion's share", "live and learn", "look before you leap",
	"loose cannon", "low-hanging fruit", "make a long story short", "moment of truth",
	"needle in a haystack", "needless to say", "neither here nor there",
	"nip it in the bud", "no pain, no gain", "no stone unturned",
	"nose to the grindstone", "not the end of the world", "nothing to sneeze at",
	"off the top of my head", "on cloud nine", "on pins and needles", "on thin ice",
	"once in a blue moon", "one in a million", "out of the woods", "out on a limb",
	"over a barrel", "par for the course", "part and parcel", "pass the buck",
	"piece of cake", "plain as day", "play it by ear", "pull your weight",
	"put the cart before the horse", "rain check", "raining cats and dogs",
	"read between the lines", "red herring", "reinvent the wheel", "rings a bell",
	"rule of thumb", "salt of the earth", "second to none", "see eye to eye",
	"set in stone", "sharp as a tack", "shot in the dark", "sick as a dog",
	"sink or swim", "slippery slope", "spill the beans", "spread like wildfire",
	"start from scratch", "stick in the mud", "straight as an arrow",
	"take the bull by the horns", "the bottom line", "the real deal",
	"think outside the box", "through thick and thin", "throw in the towel",
	"time and time again", "time is of the essence", "tip of the iceberg",
	"to the best of my knowledge", "tongue in cheek", "too good to be true",
	"tried and true", "twist of fate", "under the weather", "until the cows come home",
	"uphill battle", "water under the bridge", "weather the storm",
	"when push comes to shove", "whole nine yards", "wild goose chase",
	"worth its weight in gold", "writing on the wall",
}

var toBeForms = []string{
	"be", "being", "been", "am", "is", "isn't", "are", "aren't", "was", "wasn't", "were",
	"weren't", "i'm", "you're", "we're", "they're", "he's", "she's", "it's", "there's",
	"here's", "where's", "how's", "what's", "who's", "that's", "ain't",
	"hasn't been", "haven't been", "hadn't been",
}
